package mailer

import "embed"

const (
	FromName        = "BGM Sons"
	maxRetries      = 3
	EnquiryTemplate = "enquiry.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, subject, replyTo string, data any) error
}

// EnquiryRow is one key/value line in the rendered enquiry table.
type EnquiryRow struct {
	Key   string
	Value string
}

// EnquiryData feeds the enquiry template for both the general contact
// form and the per-product enquiry.
type EnquiryData struct {
	EnquiryType string
	Date        string
	Name        string
	Email       string
	Phone       string
	Message     string
	Rows        []EnquiryRow
}
