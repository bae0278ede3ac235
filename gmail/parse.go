package gmail

import (
	"encoding/base64"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"google.golang.org/api/gmail/v1"
)

// DefaultSubject replaces a missing Subject header.
const DefaultSubject = "No Subject"

var (
	senderAddressRe = regexp.MustCompile(`<(.+?)>`)
	senderNameRe    = regexp.MustCompile(`(.+?) <`)
)

// ParseSender splits a From header of the form `Name <address>`.
//
// Without angle brackets the whole (trimmed) value is the address and the
// name is empty. Surrounding quotes are removed from the name.
func ParseSender(from string) (name, address string) {
	address = strings.TrimSpace(from)
	if m := senderAddressRe.FindStringSubmatch(from); m != nil {
		address = strings.TrimSpace(m[1])
	}
	if m := senderNameRe.FindStringSubmatch(from); m != nil {
		name = strings.Trim(strings.TrimSpace(m[1]), `"`)
	}
	return name, address
}

func headerValue(headers []*gmail.MessagePartHeader, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

func parseEmail(msg *gmail.Message) Email {
	email := Email{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Subject:  DefaultSubject,
		Labels:   msg.LabelIds,
	}
	if msg.InternalDate > 0 {
		email.ReceivedAt = time.UnixMilli(msg.InternalDate)
	}
	if msg.Payload == nil {
		return email
	}

	headers := msg.Payload.Headers
	if from, ok := headerValue(headers, "From"); ok {
		email.SenderName, email.SenderAddress = ParseSender(from)
	}
	if subject, ok := headerValue(headers, "Subject"); ok {
		email.Subject = subject
	}
	email.MessageID, _ = headerValue(headers, "Message-ID")
	email.Body = extractBody(msg.Payload)
	return email
}

// extractBody returns the first text/plain part, depth first. Messages with
// only an HTML part fall back to that part rendered as Markdown.
func extractBody(payload *gmail.MessagePart) string {
	if part := findPart(payload, "text/plain"); part != nil {
		if body, ok := decodeBodyData(part.Body.Data); ok {
			return body
		}
	}
	if part := findPart(payload, "text/html"); part != nil {
		if html, ok := decodeBodyData(part.Body.Data); ok {
			md, err := htmltomarkdown.ConvertString(html)
			if err != nil {
				return html
			}
			return md
		}
	}
	return ""
}

func findPart(part *gmail.MessagePart, mimeType string) *gmail.MessagePart {
	if part == nil {
		return nil
	}
	if strings.EqualFold(part.MimeType, mimeType) && part.Body != nil && part.Body.Data != "" {
		return part
	}
	for _, p := range part.Parts {
		if found := findPart(p, mimeType); found != nil {
			return found
		}
	}
	return nil
}

// decodeBodyData accepts Gmail's base64url data with or without padding.
func decodeBodyData(data string) (string, bool) {
	if b, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(b), true
	}
	if b, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(b), true
	}
	return "", false
}
