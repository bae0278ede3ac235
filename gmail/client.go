package gmail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/gmail/v1"
)

const (
	defaultUser           = "me"
	defaultProcessedLabel = "DRAFTED"
	queryDateLayout       = "2006/01/02"

	labelInbox  = "INBOX"
	labelUnread = "UNREAD"
)

var errStopPaging = errors.New("stop paging")

// Options configures a Mailbox. Zero values fall back to defaults.
type Options struct {
	User           string
	ProcessedLabel string
	Sender         string // From address on outgoing mail; Gmail fills it when empty
	Now            func() time.Time
	Logger         zerolog.Logger
}

// Mailbox is the adapter over an authenticated Gmail service. It is not safe
// for concurrent use.
type Mailbox struct {
	srv            *gmail.Service
	user           string
	processedLabel string
	sender         string
	now            func() time.Time
	log            zerolog.Logger

	labelIDs map[string]string // name -> id
}

func NewMailbox(srv *gmail.Service, opts Options) *Mailbox {
	m := &Mailbox{
		srv:            srv,
		user:           opts.User,
		processedLabel: opts.ProcessedLabel,
		sender:         opts.Sender,
		now:            opts.Now,
		log:            opts.Logger,
		labelIDs:       map[string]string{},
	}
	if m.user == "" {
		m.user = defaultUser
	}
	if m.processedLabel == "" {
		m.processedLabel = defaultProcessedLabel
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// StartOfWeek returns local midnight of the most recent Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	y, mo, d := t.Date()
	midnight := time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

func labelTerm(prefix, name string) string {
	if strings.ContainsAny(name, " \t") {
		return fmt.Sprintf("%slabel:%q", prefix, name)
	}
	return prefix + "label:" + name
}

// weekQuery searches from the day before start. Gmail evaluates after: at
// midnight Pacific time, so the exact cut against start happens locally.
func weekQuery(start time.Time, processedLabel string, excludeLabels []string) string {
	terms := []string{
		"after:" + start.AddDate(0, 0, -1).Format(queryDateLayout),
		labelTerm("", labelInbox),
		labelTerm("-", processedLabel),
	}
	for _, l := range excludeLabels {
		if l == "" || l == processedLabel {
			continue
		}
		terms = append(terms, labelTerm("-", l))
	}
	return strings.Join(terms, " ")
}

// ListUnansweredThisWeek returns inbox messages received since the start of
// the current week that carry neither the processed label nor any of
// excludeLabels, in listing order.
func (m *Mailbox) ListUnansweredThisWeek(ctx context.Context, excludeLabels []string) ([]Email, error) {
	start := StartOfWeek(m.now())
	q := weekQuery(start, m.processedLabel, excludeLabels)
	m.log.Debug().Str("query", q).Msg("listing unanswered messages")

	ids, err := m.listIDs(ctx, q, 0)
	if err != nil {
		return nil, opError("list unanswered", err)
	}

	excluded := m.resolveLabelIDs(ctx, append([]string{m.processedLabel}, excludeLabels...))
	emails := make([]Email, 0, len(ids))
	for _, email := range m.fetchAll(ctx, ids) {
		if !email.ReceivedAt.IsZero() && email.ReceivedAt.Before(start) {
			m.log.Debug().Str("id", email.ID).Time("received", email.ReceivedAt).Msg("skipping message from before this week")
			continue
		}
		if hasAnyLabel(email, excluded) {
			m.log.Debug().Str("id", email.ID).Msg("skipping message with excluded label")
			continue
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// ListUnread returns up to max unread messages; max <= 0 means all.
func (m *Mailbox) ListUnread(ctx context.Context, max int) ([]Email, error) {
	ids, err := m.listIDs(ctx, "is:unread", max)
	if err != nil {
		return nil, opError("list unread", err)
	}
	return m.fetchAll(ctx, ids), nil
}

func (m *Mailbox) listIDs(ctx context.Context, q string, max int) ([]string, error) {
	var ids []string
	call := m.srv.Users.Messages.List(m.user).Q(q)
	if max > 0 {
		call = call.MaxResults(int64(max))
	}
	err := call.Pages(ctx, func(r *gmail.ListMessagesResponse) error {
		for _, msg := range r.Messages {
			ids = append(ids, msg.Id)
			if max > 0 && len(ids) >= max {
				return errStopPaging
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopPaging) {
		return nil, err
	}
	return ids, nil
}

// fetchAll hydrates message IDs; a message that cannot be fetched is logged
// and left out.
func (m *Mailbox) fetchAll(ctx context.Context, ids []string) []Email {
	emails := make([]Email, 0, len(ids))
	for _, id := range ids {
		msg, err := m.srv.Users.Messages.Get(m.user, id).Format("full").Context(ctx).Do()
		if err != nil {
			m.log.Error().Err(err).Str("id", id).Msg("unable to retrieve message")
			continue
		}
		emails = append(emails, parseEmail(msg))
	}
	return emails
}

// resolveLabelIDs maps label names to the IDs Gmail puts on messages. System
// labels use their name as ID, so names are kept alongside resolved IDs.
func (m *Mailbox) resolveLabelIDs(ctx context.Context, names []string) map[string]bool {
	ids := map[string]bool{}
	for _, n := range names {
		if n != "" {
			ids[n] = true
		}
	}
	if err := m.refreshLabels(ctx); err != nil {
		m.log.Warn().Err(err).Msg("unable to list labels, filtering by name only")
		return ids
	}
	for _, n := range names {
		if id, ok := m.labelIDs[n]; ok {
			ids[id] = true
		}
	}
	return ids
}

func hasAnyLabel(email Email, ids map[string]bool) bool {
	for _, l := range email.Labels {
		if ids[l] {
			return true
		}
	}
	return false
}

func (m *Mailbox) refreshLabels(ctx context.Context) error {
	resp, err := m.srv.Users.Labels.List(m.user).Context(ctx).Do()
	if err != nil {
		return err
	}
	for _, l := range resp.Labels {
		m.labelIDs[l.Name] = l.Id
	}
	return nil
}

// EnsureLabel returns the ID of the label with exactly this name, creating it
// when it does not exist yet.
func (m *Mailbox) EnsureLabel(ctx context.Context, name string) (string, error) {
	if id, ok := m.labelIDs[name]; ok {
		return id, nil
	}
	if err := m.refreshLabels(ctx); err != nil {
		return "", opError("list labels", err)
	}
	if id, ok := m.labelIDs[name]; ok {
		return id, nil
	}

	created, err := m.srv.Users.Labels.Create(m.user, &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", opError("create label", err)
	}
	m.log.Info().Str("label", name).Str("id", created.Id).Msg("created label")
	m.labelIDs[name] = created.Id
	return created.Id, nil
}

// TagProcessed applies the processed label to a message.
func (m *Mailbox) TagProcessed(ctx context.Context, messageID string) error {
	labelID, err := m.EnsureLabel(ctx, m.processedLabel)
	if err != nil {
		return err
	}
	_, err = m.srv.Users.Messages.Modify(m.user, messageID, &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}).Context(ctx).Do()
	return opError("tag processed", err)
}

// MarkRead removes the UNREAD label from a message.
func (m *Mailbox) MarkRead(ctx context.Context, messageID string) error {
	_, err := m.srv.Users.Messages.Modify(m.user, messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{labelUnread},
	}).Context(ctx).Do()
	return opError("mark read", err)
}

// CreateDraftReply saves a threaded reply to original as a draft and returns
// the draft ID. Nothing is sent.
func (m *Mailbox) CreateDraftReply(ctx context.Context, original Email, body string) (string, error) {
	raw, err := buildReply(m.sender, m.now(), original, body)
	if err != nil {
		return "", opError("build reply", err)
	}
	draft, err := m.srv.Users.Drafts.Create(m.user, &gmail.Draft{
		Message: &gmail.Message{Raw: raw, ThreadId: original.ThreadID},
	}).Context(ctx).Do()
	if err != nil {
		return "", opError("create draft", err)
	}
	return draft.Id, nil
}

// SendMessage sends out immediately and returns the new message ID.
func (m *Mailbox) SendMessage(ctx context.Context, out Outgoing) (string, error) {
	raw, err := buildMessage(m.sender, m.now(), out)
	if err != nil {
		return "", opError("build message", err)
	}
	sent, err := m.srv.Users.Messages.Send(m.user, &gmail.Message{
		Raw:      raw,
		ThreadId: out.ThreadID,
	}).Context(ctx).Do()
	if err != nil {
		return "", opError("send message", err)
	}
	return sent.Id, nil
}
