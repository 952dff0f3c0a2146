// Package emailsource supplies raw email records to the parsing pipeline,
// whether pasted, uploaded or fetched over IMAP. It only knows how to
// produce the record shape the parser consumes; nothing here interprets
// transaction content.
package emailsource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dafterhq/fulus/internal/core/domain"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
)

var _ portssvc.EmailSource = (*PasteSource)(nil)
var _ portssvc.EmailSource = (*UploadSource)(nil)

// PasteSource wraps manually pasted email content as a single record.
type PasteSource struct {
	Subject string
	From    string
	Body    string
}

// Fetch returns the pasted content as one synthetic record.
func (s *PasteSource) Fetch(ctx context.Context) ([]domain.EmailRecord, error) {
	if strings.TrimSpace(s.Body) == "" {
		return nil, fmt.Errorf("no email content provided")
	}
	now := time.Now()
	rec := domain.EmailRecord{
		ID:      fmt.Sprintf("manual_%s", now.Format("20060102150405")),
		Subject: orDefault(s.Subject, "Manual Entry"),
		From:    orDefault(s.From, "manual@example.com"),
		Date:    now.Format(time.RFC1123Z),
		Body:    s.Body,
	}
	return []domain.EmailRecord{rec}, nil
}

// UploadSource wraps an uploaded file as a single record. Content that looks
// like a full RFC 822 message is parsed for its headers and text body;
// anything else is treated as a raw body.
type UploadSource struct {
	Filename string
	From     string
	Content  []byte
}

// Fetch returns the uploaded content as one record.
func (s *UploadSource) Fetch(ctx context.Context) ([]domain.EmailRecord, error) {
	if len(s.Content) == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}

	now := time.Now()
	id := fmt.Sprintf("upload_%s", now.Format("20060102150405"))

	if rec, err := ParseMessage(strings.NewReader(string(s.Content))); err == nil && rec.Body != "" {
		rec.ID = id
		if rec.Subject == "" {
			rec.Subject = s.Filename
		}
		if rec.From == "" {
			rec.From = orDefault(s.From, "upload@example.com")
		}
		return []domain.EmailRecord{rec}, nil
	}

	rec := domain.EmailRecord{
		ID:      id,
		Subject: s.Filename,
		From:    orDefault(s.From, "upload@example.com"),
		Date:    now.Format(time.RFC1123Z),
		Body:    string(s.Content),
	}
	return []domain.EmailRecord{rec}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
