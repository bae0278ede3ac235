package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// fakeGmail serves the subset of the Gmail REST API used by Mailbox.
type fakeGmail struct {
	mu sync.Mutex

	order    []string
	messages map[string]*gmail.Message
	labels   []*gmail.Label

	queries      []string
	labelCreates int
	drafts       []*gmail.Draft
	sent         []*gmail.Message
	modifies     map[string][]*gmail.ModifyMessageRequest

	// failStatus, when set for an operation name, makes it return that code.
	failStatus map[string]int
}

func newFakeGmail() *fakeGmail {
	return &fakeGmail{
		messages:   map[string]*gmail.Message{},
		modifies:   map[string][]*gmail.ModifyMessageRequest{},
		failStatus: map[string]int{},
	}
}

func (f *fakeGmail) addMessage(msg *gmail.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = append(f.order, msg.Id)
	f.messages[msg.Id] = msg
}

func (f *fakeGmail) fail(op string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus[op] = code
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":"fake failure"}}`, code)
}

func (f *fakeGmail) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/gmail/v1/users/me/")
	parts := strings.Split(path, "/")
	op := r.Method + " " + parts[0]
	switch {
	case len(parts) == 3 && parts[2] == "modify":
		op = "modify"
	case path == "messages/send":
		op = "send"
	case len(parts) == 2 && parts[0] == "messages":
		op = "get"
	}
	if code, ok := f.failStatus[op]; ok {
		writeError(w, code)
		return
	}

	switch op {
	case "GET messages":
		f.queries = append(f.queries, r.URL.Query().Get("q"))
		max, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
		resp := &gmail.ListMessagesResponse{}
		for _, id := range f.order {
			if max > 0 && len(resp.Messages) >= max {
				break
			}
			ref := &gmail.Message{Id: id}
			if msg := f.messages[id]; msg != nil {
				ref.ThreadId = msg.ThreadId
			}
			resp.Messages = append(resp.Messages, ref)
		}
		writeJSON(w, resp)
	case "get":
		msg, ok := f.messages[parts[1]]
		if !ok {
			writeError(w, http.StatusNotFound)
			return
		}
		writeJSON(w, msg)
	case "modify":
		msg, ok := f.messages[parts[1]]
		if !ok {
			writeError(w, http.StatusNotFound)
			return
		}
		var req gmail.ModifyMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.modifies[msg.Id] = append(f.modifies[msg.Id], &req)
		msg.LabelIds = applyLabelChange(msg.LabelIds, req.AddLabelIds, req.RemoveLabelIds)
		writeJSON(w, msg)
	case "send":
		var msg gmail.Message
		_ = json.NewDecoder(r.Body).Decode(&msg)
		msg.Id = fmt.Sprintf("sent-%d", len(f.sent)+1)
		f.sent = append(f.sent, &msg)
		writeJSON(w, &msg)
	case "GET labels":
		writeJSON(w, &gmail.ListLabelsResponse{Labels: f.labels})
	case "POST labels":
		var l gmail.Label
		_ = json.NewDecoder(r.Body).Decode(&l)
		f.labelCreates++
		l.Id = fmt.Sprintf("Label_%d", len(f.labels)+1)
		f.labels = append(f.labels, &l)
		writeJSON(w, &l)
	case "POST drafts":
		var d gmail.Draft
		_ = json.NewDecoder(r.Body).Decode(&d)
		d.Id = fmt.Sprintf("draft-%d", len(f.drafts)+1)
		f.drafts = append(f.drafts, &d)
		writeJSON(w, &d)
	default:
		http.NotFound(w, r)
	}
}

func applyLabelChange(labels, add, remove []string) []string {
	out := []string{}
	for _, l := range labels {
		drop := false
		for _, rm := range remove {
			drop = drop || rm == l
		}
		if !drop {
			out = append(out, l)
		}
	}
	for _, a := range add {
		present := false
		for _, l := range out {
			present = present || l == a
		}
		if !present {
			out = append(out, a)
		}
	}
	return out
}

func newTestMailbox(t *testing.T, fake *fakeGmail, opts Options) *Mailbox {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gmail.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	opts.Logger = zerolog.Nop()
	return NewMailbox(svc, opts)
}

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

type header struct{ name, value string }

func plainMessage(id, threadID string, internalDate int64, body string, headers ...header) *gmail.Message {
	msg := &gmail.Message{
		Id:           id,
		ThreadId:     threadID,
		LabelIds:     []string{"INBOX", "UNREAD"},
		InternalDate: internalDate,
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64(body)}},
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>" + body + "</p>")}},
			},
		},
	}
	for _, h := range headers {
		msg.Payload.Headers = append(msg.Payload.Headers, &gmail.MessagePartHeader{Name: h.name, Value: h.value})
	}
	return msg
}
