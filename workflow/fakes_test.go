package workflow

import (
	"bytes"
	"context"
	"errors"
	"regexp"

	"github.com/bassamadnan/supportdraft/compose"
	"github.com/bassamadnan/supportdraft/gmail"
)

type draft struct {
	original gmail.Email
	body     string
}

// fakeMailbox keeps drafts and labels in memory. Listing honors the
// processed tag so repeated runs behave like the real adapter.
type fakeMailbox struct {
	emails []gmail.Email

	listErr  error
	draftErr map[string]error // by message ID
	tagErr   map[string]error
	sendErr  map[string]error

	excludeLabels [][]string
	drafts        []draft
	tagged        map[string]int
	sent          []gmail.Outgoing
	read          []string
	unreadMax     []int
}

func newFakeMailbox(emails ...gmail.Email) *fakeMailbox {
	return &fakeMailbox{
		emails:   emails,
		draftErr: map[string]error{},
		tagErr:   map[string]error{},
		sendErr:  map[string]error{},
		tagged:   map[string]int{},
	}
}

func (f *fakeMailbox) ListUnansweredThisWeek(_ context.Context, excludeLabels []string) ([]gmail.Email, error) {
	f.excludeLabels = append(f.excludeLabels, excludeLabels)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []gmail.Email
	for _, e := range f.emails {
		if f.tagged[e.ID] == 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMailbox) CreateDraftReply(_ context.Context, original gmail.Email, body string) (string, error) {
	if err := f.draftErr[original.ID]; err != nil {
		return "", err
	}
	f.drafts = append(f.drafts, draft{original: original, body: body})
	return "draft-" + original.ID, nil
}

func (f *fakeMailbox) TagProcessed(_ context.Context, messageID string) error {
	if err := f.tagErr[messageID]; err != nil {
		return err
	}
	f.tagged[messageID]++
	return nil
}

func (f *fakeMailbox) ListUnread(_ context.Context, max int) ([]gmail.Email, error) {
	f.unreadMax = append(f.unreadMax, max)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if max > 0 && len(f.emails) > max {
		return f.emails[:max], nil
	}
	return f.emails, nil
}

func (f *fakeMailbox) SendMessage(_ context.Context, out gmail.Outgoing) (string, error) {
	if err := f.sendErr[out.To]; err != nil {
		return "", err
	}
	f.sent = append(f.sent, out)
	return "sent-" + out.To, nil
}

func (f *fakeMailbox) MarkRead(_ context.Context, messageID string) error {
	f.read = append(f.read, messageID)
	return nil
}

// fakeComposer answers from a table keyed by email body.
type fakeComposer struct {
	replies map[string]compose.Reply
	fail    map[string]bool
	calls   int
}

func (c *fakeComposer) Compose(_ context.Context, email gmail.Email) (compose.Reply, error) {
	c.calls++
	if c.fail[email.Body] {
		return compose.Reply{}, errors.New("completion failed")
	}
	if r, ok := c.replies[email.Body]; ok {
		return r, nil
	}
	return compose.Reply{Body: "Reply to: " + email.Body}, nil
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(buf *bytes.Buffer) string {
	return ansi.ReplaceAllString(buf.String(), "")
}
