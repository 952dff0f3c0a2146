package domain

// IngestStatus tells what happened to one email record during a batch run.
type IngestStatus string

const (
	IngestParsed        IngestStatus = "parsed"         // parsed, persistence not requested
	IngestSaved         IngestStatus = "saved"          // parsed and stored
	IngestDuplicate     IngestStatus = "duplicate"      // parsed, matched an existing transaction
	IngestParseFailed   IngestStatus = "parse_failed"   // no usable transaction signal
	IngestPersistFailed IngestStatus = "persist_failed" // parsed but storage rejected it
)

// RecordOutcome is the per-email result of a batch ingestion.
type RecordOutcome struct {
	EmailID     string             `json:"emailID"`
	Status      IngestStatus       `json:"status"`
	Detail      string             `json:"detail,omitempty"`
	Transaction *ParsedTransaction `json:"transaction,omitempty"`
}

// BatchResult aggregates a batch ingestion run. A failure on one record
// never aborts the rest; the counts are the user-visible outcome.
type BatchResult struct {
	Fetched         int             `json:"fetched"`
	Parsed          int             `json:"parsed"`
	Saved           int             `json:"saved"`
	Duplicates      int             `json:"duplicates"`
	ParseFailures   int             `json:"parseFailures"`
	PersistFailures int             `json:"persistFailures"`
	Outcomes        []RecordOutcome `json:"outcomes"`
}
