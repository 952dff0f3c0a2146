package domain

// EmailRecord is the raw email shape every source adapter produces and the
// parser consumes. Date stays a raw header string; the parser decides how to
// interpret it.
type EmailRecord struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Date    string `json:"date"`
	Body    string `json:"body"`
}
