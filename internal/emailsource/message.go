package emailsource

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/emersion/go-message/mail"
)

// ParseMessage reads one RFC 822 message and extracts the headers and the
// first text part into an EmailRecord. Multipart messages prefer text/plain
// over text/html; HTML-only bodies are kept as-is and left to the parser's
// pattern tolerance.
func ParseMessage(r io.Reader) (domain.EmailRecord, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return domain.EmailRecord{}, fmt.Errorf("failed to read message: %w", err)
	}

	var rec domain.EmailRecord
	if subject, err := mr.Header.Subject(); err == nil {
		rec.Subject = subject
	}
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		rec.From = from[0].String()
	}
	if date, err := mr.Header.Date(); err == nil && !date.IsZero() {
		rec.Date = date.Format(time.RFC1123Z)
	}
	if msgID, err := mr.Header.MessageID(); err == nil {
		rec.ID = msgID
	}

	var plain, html string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.EmailRecord{}, fmt.Errorf("failed to read message part: %w", err)
		}
		header, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		body, err := io.ReadAll(p.Body)
		if err != nil {
			return domain.EmailRecord{}, fmt.Errorf("failed to read message body: %w", err)
		}
		switch {
		case contentType == "text/plain" && plain == "":
			plain = string(body)
		case contentType == "text/html" && html == "":
			html = string(body)
		}
	}

	rec.Body = strings.TrimSpace(plain)
	if rec.Body == "" {
		rec.Body = strings.TrimSpace(html)
	}
	return rec, nil
}
