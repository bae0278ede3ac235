package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bassamadnan/supportdraft/config"
	"github.com/bassamadnan/supportdraft/gmail"
	"github.com/rs/zerolog"
)

const classifyAttempts = 3

// Reply is a generated reply body plus how it was chosen.
type Reply struct {
	Body         string
	Category     int // 0 when the email was not classified
	CategoryName string
	Custom       bool // free-form fallback because no canned response applied
}

// Composer produces the reply for one email.
type Composer interface {
	Compose(ctx context.Context, email gmail.Email) (Reply, error)
}

// InstructionComposer answers every email with one completion whose prompt
// embeds the instructions document followed by the email body.
type InstructionComposer struct {
	completer    Completer
	instructions string
}

func NewInstructionComposer(completer Completer, instructions string) *InstructionComposer {
	return &InstructionComposer{completer: completer, instructions: instructions}
}

func (c *InstructionComposer) Compose(ctx context.Context, email gmail.Email) (Reply, error) {
	body, err := c.completer.Complete(ctx, systemPrompt, fmt.Sprintf(instructionPrompt, c.instructions, email.Body))
	if err != nil {
		return Reply{}, fmt.Errorf("composing reply: %w", err)
	}
	return Reply{Body: body}, nil
}

// Catalog looks up the canned response for a category.
type Catalog interface {
	Lookup(category int) (config.CannedResponse, bool)
}

// CategoryComposer classifies an email and answers with the canned response
// for its category, falling back to a free-form reply.
type CategoryComposer struct {
	completer Completer
	catalog   Catalog
	log       zerolog.Logger
}

func NewCategoryComposer(completer Completer, catalog Catalog, logger zerolog.Logger) *CategoryComposer {
	return &CategoryComposer{completer: completer, catalog: catalog, log: logger}
}

// Classify asks the model for a category number, up to three times. It
// reports false when no attempt produced a number in range or the
// completion call itself failed.
func (c *CategoryComposer) Classify(ctx context.Context, body string) (int, bool) {
	for attempt := 1; attempt <= classifyAttempts; attempt++ {
		out, err := c.completer.Complete(ctx, systemPrompt, fmt.Sprintf(classifyPrompt, body))
		if err != nil {
			c.log.Error().Err(err).Int("attempt", attempt).Msg("classification request failed")
			return 0, false
		}
		if n, ok := parseCategory(out); ok {
			return n, true
		}
		c.log.Warn().Str("response", out).Int("attempt", attempt).Msg("unusable classification")
	}
	return 0, false
}

func parseCategory(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > CatchAll {
		return 0, false
	}
	return n, true
}

func (c *CategoryComposer) Compose(ctx context.Context, email gmail.Email) (Reply, error) {
	category, ok := c.Classify(ctx, email.Body)
	if ok && category != CatchAll {
		if canned, found := c.catalog.Lookup(category); found {
			return Reply{Body: canned.Response, Category: category, CategoryName: canned.Category}, nil
		}
		c.log.Warn().Int("category", category).Msg("no canned response for category")
	}

	body, err := c.completer.Complete(ctx, systemPrompt, fmt.Sprintf(supportPrompt, email.Body))
	if err != nil {
		return Reply{}, fmt.Errorf("composing custom reply: %w", err)
	}
	return Reply{Body: body, Category: category, Custom: true}, nil
}
