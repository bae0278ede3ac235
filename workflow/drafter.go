package workflow

import (
	"context"

	"github.com/bassamadnan/supportdraft/compose"
	"github.com/bassamadnan/supportdraft/config"
	"github.com/bassamadnan/supportdraft/gmail"
	"github.com/rs/zerolog"
)

// Drafter creates a draft reply for every unanswered email of the current
// week and tags each one once its draft exists.
type Drafter struct {
	Mailbox       Mailbox
	Composer      compose.Composer
	ExcludeLabels []string
	Filters       config.Filters
	Reporter      *Reporter
	Log           zerolog.Logger
}

// Run processes the emails one at a time in listing order. A failure on one
// email is logged and counted; the rest are still attempted. An email whose
// draft was created but whose tagging failed is listed again next run and
// gets a second draft. Run returns an error when listing fails, when Gmail
// rejects the credentials, or when ctx is done.
func (d *Drafter) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	d.Reporter.Scanning()
	emails, err := d.Mailbox.ListUnansweredThisWeek(ctx, d.ExcludeLabels)
	if err != nil {
		d.Log.Error().Err(err).Msg("listing unanswered emails failed")
		return summary, err
	}
	summary.Found = len(emails)
	d.Reporter.Found(len(emails), "unanswered")

	for i, email := range emails {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		log := d.Log.With().Str("id", email.ID).Str("subject", email.Subject).Logger()
		d.Reporter.Answering(i+1, len(emails), email.Subject)

		if reason, ignored := ignoreReason(d.Filters, email); ignored {
			log.Info().Str("reason", reason).Msg("email ignored")
			d.Reporter.Skipped(email.Subject, reason)
			summary.Skipped++
			continue
		}

		reply, err := d.Composer.Compose(ctx, email)
		if err != nil {
			log.Error().Err(err).Msg("composing reply failed")
			d.Reporter.DraftFailed(email.Subject)
			summary.Failed++
			continue
		}
		d.Reporter.Reply(reply)

		draftID, err := d.Mailbox.CreateDraftReply(ctx, email, reply.Body)
		if err != nil {
			log.Error().Err(err).Msg("creating draft failed")
			d.Reporter.DraftFailed(email.Subject)
			summary.Failed++
			if gmail.IsAuthError(err) {
				return summary, err
			}
			continue
		}
		summary.Answered++
		log.Info().Str("draft", draftID).Int("category", reply.Category).Msg("draft created")

		d.Reporter.Drafted(email.Subject)
		if err := d.Mailbox.TagProcessed(ctx, email.ID); err != nil {
			log.Error().Err(err).Msg("tagging email failed, it will be drafted again next run")
			if gmail.IsAuthError(err) {
				return summary, err
			}
			continue
		}
		summary.Marked++
	}
	d.Reporter.Done(summary)
	return summary, nil
}
