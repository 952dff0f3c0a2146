package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dafterhq/fulus/internal/apperrors"
	"github.com/dafterhq/fulus/internal/core/domain"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/dafterhq/fulus/internal/middleware"
)

// IngestService runs email records through the parse-then-persist pipeline.
// Records are processed one at a time in source order; a failure on one
// record never aborts the rest.
type IngestService struct {
	parser portssvc.ParserSvc
	ledger portssvc.LedgerSvc
}

var _ portssvc.IngestSvc = (*IngestService)(nil)

// NewIngestService builds an IngestService from a parser and a ledger.
func NewIngestService(parser portssvc.ParserSvc, ledger portssvc.LedgerSvc) *IngestService {
	return &IngestService{parser: parser, ledger: ledger}
}

// IngestRecords parses every record and, when persist is set, stores the
// results. The returned BatchResult carries one outcome per record plus the
// aggregate counts.
func (s *IngestService) IngestRecords(ctx context.Context, records []domain.EmailRecord, persist bool) domain.BatchResult {
	logger := middleware.GetLoggerFromCtx(ctx)

	result := domain.BatchResult{
		Fetched:  len(records),
		Outcomes: make([]domain.RecordOutcome, 0, len(records)),
	}

	for _, rec := range records {
		outcome := s.ingestOne(ctx, rec, persist)
		result.Outcomes = append(result.Outcomes, outcome)

		switch outcome.Status {
		case domain.IngestParsed:
			result.Parsed++
		case domain.IngestSaved:
			result.Parsed++
			result.Saved++
		case domain.IngestDuplicate:
			result.Parsed++
			result.Duplicates++
		case domain.IngestParseFailed:
			result.ParseFailures++
		case domain.IngestPersistFailed:
			result.Parsed++
			result.PersistFailures++
		}
	}

	logger.Info("Batch ingestion finished",
		slog.Int("fetched", result.Fetched),
		slog.Int("saved", result.Saved),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("parse_failures", result.ParseFailures),
		slog.Int("persist_failures", result.PersistFailures),
	)
	return result
}

// FetchAndIngest pulls records from the source and ingests them. Only the
// fetch itself can fail the whole operation; per-record failures are
// reported in the BatchResult.
func (s *IngestService) FetchAndIngest(ctx context.Context, source portssvc.EmailSource, persist bool) (domain.BatchResult, error) {
	records, err := source.Fetch(ctx)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("failed to fetch emails: %w", err)
	}
	return s.IngestRecords(ctx, records, persist), nil
}

func (s *IngestService) ingestOne(ctx context.Context, rec domain.EmailRecord, persist bool) domain.RecordOutcome {
	logger := middleware.GetLoggerFromCtx(ctx)

	parsed, err := s.parser.Parse(rec)
	if err != nil {
		if !errors.Is(err, apperrors.ErrParseFailure) {
			logger.Error("Unexpected parser error", slog.String("error", err.Error()), slog.String("email_id", rec.ID))
		}
		return domain.RecordOutcome{
			EmailID: rec.ID,
			Status:  domain.IngestParseFailed,
			Detail:  err.Error(),
		}
	}

	if !persist {
		return domain.RecordOutcome{
			EmailID:     rec.ID,
			Status:      domain.IngestParsed,
			Transaction: parsed,
		}
	}

	_, created, err := s.ledger.CreateTransaction(ctx, *parsed)
	if err != nil {
		return domain.RecordOutcome{
			EmailID:     rec.ID,
			Status:      domain.IngestPersistFailed,
			Detail:      err.Error(),
			Transaction: parsed,
		}
	}
	status := domain.IngestSaved
	if !created {
		status = domain.IngestDuplicate
	}
	return domain.RecordOutcome{
		EmailID:     rec.ID,
		Status:      status,
		Transaction: parsed,
	}
}
