package dto

import "github.com/dafterhq/fulus/internal/core/domain"

// ParseEmailRequest carries pasted email content to the parser.
type ParseEmailRequest struct {
	Subject   string `json:"subject"`
	FromEmail string `json:"from_email"`
	Body      string `json:"body" binding:"required"`
	SaveToDB  bool   `json:"save_to_db"`
}

// ParseEmailResponse returns the normalized record plus what persistence did
// with it when save_to_db was set.
type ParseEmailResponse struct {
	Transaction domain.ParsedTransaction `json:"transaction"`
	Saved       bool                     `json:"saved"`
	Duplicate   bool                     `json:"duplicate"`
}

// FetchEmailsRequest carries user-supplied IMAP settings for a single
// fetch-and-ingest session.
type FetchEmailsRequest struct {
	Host               string   `json:"email_host" binding:"required"`
	Port               int      `json:"email_port"`
	Username           string   `json:"email_username" binding:"required"`
	Password           string   `json:"email_password" binding:"required"`
	UseSSL             bool     `json:"email_use_ssl"`
	Folder             string   `json:"folder"`
	UnreadOnly         bool     `json:"unread_only"`
	BankEmailAddresses []string `json:"bank_email_addresses"`
	BankEmailSubjects  []string `json:"bank_email_subjects"`
	SaveToDB           bool     `json:"save_to_db"`
}
