package emailsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dafterhq/fulus/internal/core/domain"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/dafterhq/fulus/internal/middleware"
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// IMAPConfig holds the connection and filter settings for one fetch
// session. Addresses and subjects narrow the search to bank notifications.
type IMAPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	UseSSL     bool
	Folder     string
	UnreadOnly bool
	// BankEmailAddresses are sender addresses to match; empty means all.
	BankEmailAddresses []string
	// BankEmailSubjects are subject fragments to keep, matched
	// case-insensitively after the fetch; empty means all.
	BankEmailSubjects []string
}

// IMAPSource fetches bank emails from a mailbox. The connection is scoped to
// a single Fetch call: connect, search, fetch bodies, logout.
type IMAPSource struct {
	cfg IMAPConfig
}

var _ portssvc.EmailSource = (*IMAPSource)(nil)

// NewIMAPSource builds an IMAP source, filling in the default port and
// folder when unset.
func NewIMAPSource(cfg IMAPConfig) *IMAPSource {
	if cfg.Port == 0 {
		if cfg.UseSSL {
			cfg.Port = 993
		} else {
			cfg.Port = 143
		}
	}
	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}
	return &IMAPSource{cfg: cfg}
}

// Fetch connects, searches for matching messages, pulls their bodies and
// disconnects. Messages that fail to decode are skipped with a warning so
// one broken email does not sink the batch.
func (s *IMAPSource) Fetch(ctx context.Context) ([]domain.EmailRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	c, err := s.dial()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", s.addr(), err)
	}
	defer c.Logout()

	if err := c.Login(s.cfg.Username, s.cfg.Password); err != nil {
		return nil, fmt.Errorf("failed to login as %s: %w", s.cfg.Username, err)
	}

	if _, err := c.Select(s.cfg.Folder, true); err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", s.cfg.Folder, err)
	}

	seqNums, err := s.search(c)
	if err != nil {
		return nil, err
	}
	if len(seqNums) == 0 {
		return []domain.EmailRecord{}, nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNums...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchUid}

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, items, messages)
	}()

	records := []domain.EmailRecord{}
	for msg := range messages {
		if err := ctx.Err(); err != nil {
			// Drain so the fetch goroutine can finish.
			continue
		}
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		rec, err := ParseMessage(body)
		if err != nil {
			logger.Warn("Skipping undecodable message", slog.Uint64("uid", uint64(msg.Uid)), slog.String("error", err.Error()))
			continue
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("imap_%d", msg.Uid)
		}
		if !s.subjectMatches(rec.Subject) {
			continue
		}
		records = append(records, rec)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("Fetched bank emails", slog.Int("count", len(records)), slog.String("folder", s.cfg.Folder))
	return records, nil
}

func (s *IMAPSource) dial() (*client.Client, error) {
	if s.cfg.UseSSL {
		return client.DialTLS(s.addr(), nil)
	}
	return client.Dial(s.addr())
}

func (s *IMAPSource) addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// search runs one search per configured sender address and unions the
// results; the go-imap criteria model has no flat OR list.
func (s *IMAPSource) search(c *client.Client) ([]uint32, error) {
	criteriaFor := func(from string) *imap.SearchCriteria {
		criteria := imap.NewSearchCriteria()
		if s.cfg.UnreadOnly {
			criteria.WithoutFlags = []string{imap.SeenFlag}
		}
		if from != "" {
			criteria.Header.Add("From", from)
		}
		return criteria
	}

	addresses := s.cfg.BankEmailAddresses
	if len(addresses) == 0 {
		addresses = []string{""}
	}

	seen := map[uint32]bool{}
	var seqNums []uint32
	for _, from := range addresses {
		ids, err := c.Search(criteriaFor(strings.TrimSpace(from)))
		if err != nil {
			return nil, fmt.Errorf("failed to search folder %s: %w", s.cfg.Folder, err)
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				seqNums = append(seqNums, id)
			}
		}
	}
	return seqNums, nil
}

func (s *IMAPSource) subjectMatches(subject string) bool {
	if len(s.cfg.BankEmailSubjects) == 0 {
		return true
	}
	lower := strings.ToLower(subject)
	for _, fragment := range s.cfg.BankEmailSubjects {
		if fragment = strings.TrimSpace(strings.ToLower(fragment)); fragment != "" && strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
