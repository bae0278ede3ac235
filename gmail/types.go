package gmail

import "time"

// Email holds the fields of an inbound Gmail message needed to draft a reply.
type Email struct {
	ID            string // Gmail's message ID
	ThreadID      string
	MessageID     string // RFC 5322 Message-ID header, empty when absent
	SenderName    string
	SenderAddress string
	Subject       string
	Body          string // plain text body
	Labels        []string
	ReceivedAt    time.Time
}

// Outgoing is a message sent immediately rather than saved as a draft.
type Outgoing struct {
	To        string
	Subject   string
	Body      string
	ThreadID  string
	InReplyTo string // Message-ID of the message being answered, optional
}
