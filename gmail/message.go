package gmail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
)

var errNoRecipient = errors.New("message has no recipient address")

// ReplySubject prefixes the original subject for a reply.
func ReplySubject(subject string) string {
	return "Re: " + subject
}

func buildReply(from string, date time.Time, original Email, body string) (string, error) {
	return buildMessage(from, date, Outgoing{
		To:        original.SenderAddress,
		Subject:   ReplySubject(original.Subject),
		Body:      body,
		ThreadID:  original.ThreadID,
		InReplyTo: original.MessageID,
	})
}

// buildMessage renders a text/plain message and returns it base64url encoded,
// as the Gmail API expects in Message.Raw.
func buildMessage(from string, date time.Time, out Outgoing) (string, error) {
	if out.To == "" {
		return "", errNoRecipient
	}
	var h mail.Header
	h.SetDate(date)
	if from != "" {
		h.SetAddressList("From", []*mail.Address{{Address: from}})
	}
	h.SetAddressList("To", []*mail.Address{{Address: out.To}})
	h.SetSubject(out.Subject)
	if out.InReplyTo != "" {
		h.Set("In-Reply-To", out.InReplyTo)
		h.Set("References", out.InReplyTo)
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return "", fmt.Errorf("creating message writer: %w", err)
	}
	if _, err := io.WriteString(w, out.Body); err != nil {
		return "", fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing message writer: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}
