package docs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/docs/v1"
)

// Reader fetches documents from an authenticated Docs service.
type Reader struct {
	srv *docs.Service
	log zerolog.Logger
}

func NewReader(srv *docs.Service, logger zerolog.Logger) *Reader {
	return &Reader{srv: srv, log: logger}
}

// ReadInstructions fetches the document once and returns it rendered.
func (r *Reader) ReadInstructions(ctx context.Context, documentID string) (string, error) {
	if documentID == "" {
		return "", fmt.Errorf("reading instructions: no document id configured")
	}
	doc, err := r.srv.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("reading instructions document %s: %w", documentID, err)
	}
	text := Render(doc)
	r.log.Debug().Str("document", documentID).Str("title", doc.Title).Int("length", len(text)).Msg("loaded instructions")
	return text, nil
}
