package workflow

import (
	"context"
	"strings"

	"github.com/bassamadnan/supportdraft/compose"
	"github.com/bassamadnan/supportdraft/gmail"
	"github.com/rs/zerolog"
)

// Responder answers unread emails whose subject matches Subject by sending a
// reply right away, then marks them read.
type Responder struct {
	Mailbox  ReplyMailbox
	Composer compose.Composer
	Subject  string
	Limit    int // most unread emails considered; 0 means all
	Reporter *Reporter
	Log      zerolog.Logger
}

func (r *Responder) matches(subject string) bool {
	return strings.EqualFold(strings.TrimSpace(subject), strings.TrimSpace(r.Subject))
}

// Run sends at most one reply per matching email. An email stays unread
// unless its reply was sent. Rejected credentials end the run.
func (r *Responder) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	r.Reporter.Scanning()
	emails, err := r.Mailbox.ListUnread(ctx, r.Limit)
	if err != nil {
		r.Log.Error().Err(err).Msg("listing unread emails failed")
		return summary, err
	}
	summary.Found = len(emails)
	r.Reporter.Found(len(emails), "unread")

	for i, email := range emails {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !r.matches(email.Subject) {
			summary.Skipped++
			continue
		}
		log := r.Log.With().Str("id", email.ID).Str("subject", email.Subject).Logger()
		r.Reporter.Answering(i+1, len(emails), email.Subject)

		reply, err := r.Composer.Compose(ctx, email)
		if err != nil {
			log.Error().Err(err).Msg("composing reply failed")
			r.Reporter.SendFailed(email.Subject)
			summary.Failed++
			continue
		}
		r.Reporter.Reply(reply)

		sentID, err := r.Mailbox.SendMessage(ctx, gmail.Outgoing{
			To:        email.SenderAddress,
			Subject:   gmail.ReplySubject(email.Subject),
			Body:      reply.Body,
			ThreadID:  email.ThreadID,
			InReplyTo: email.MessageID,
		})
		if err != nil {
			log.Error().Err(err).Msg("sending reply failed")
			r.Reporter.SendFailed(email.Subject)
			summary.Failed++
			if gmail.IsAuthError(err) {
				return summary, err
			}
			continue
		}
		summary.Answered++
		log.Info().Str("sent", sentID).Msg("reply sent")
		r.Reporter.Sent(email.Subject, email.SenderAddress)

		if err := r.Mailbox.MarkRead(ctx, email.ID); err != nil {
			log.Error().Err(err).Msg("marking email read failed")
			if gmail.IsAuthError(err) {
				return summary, err
			}
			continue
		}
		summary.Marked++
	}
	r.Reporter.Done(summary)
	return summary, nil
}
