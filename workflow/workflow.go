// Package workflow runs the drafting and auto-reply passes over a mailbox.
package workflow

import (
	"context"
	"strings"

	"github.com/bassamadnan/supportdraft/config"
	"github.com/bassamadnan/supportdraft/gmail"
)

// Mailbox is the part of the mailbox adapter the drafting pass needs.
type Mailbox interface {
	ListUnansweredThisWeek(ctx context.Context, excludeLabels []string) ([]gmail.Email, error)
	CreateDraftReply(ctx context.Context, original gmail.Email, body string) (string, error)
	TagProcessed(ctx context.Context, messageID string) error
}

// ReplyMailbox is the part of the mailbox adapter the auto-responder needs.
type ReplyMailbox interface {
	ListUnread(ctx context.Context, max int) ([]gmail.Email, error)
	SendMessage(ctx context.Context, out gmail.Outgoing) (string, error)
	MarkRead(ctx context.Context, messageID string) error
}

// Summary counts what a run did.
type Summary struct {
	Found    int // emails listed
	Answered int // drafts created or replies sent
	Marked   int // emails tagged as processed or marked read
	Skipped  int
	Failed   int
}

// ignoreReason returns why an email matches an ignore rule, if it does.
func ignoreReason(f config.Filters, email gmail.Email) (string, bool) {
	for _, sender := range f.IgnoreSenders {
		s := strings.ToLower(strings.TrimSpace(sender))
		if s == "" {
			continue
		}
		if strings.Contains(strings.ToLower(email.SenderAddress), s) || strings.Contains(strings.ToLower(email.SenderName), s) {
			return "sender rule: " + sender, true
		}
	}
	for _, keyword := range f.IgnoreSubjectKeywords {
		k := strings.ToLower(strings.TrimSpace(keyword))
		if k != "" && strings.Contains(strings.ToLower(email.Subject), k) {
			return "subject rule: " + keyword, true
		}
	}
	return "", false
}
