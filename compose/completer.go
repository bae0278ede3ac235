// Package compose generates reply bodies for support emails with a chat
// completion model.
package compose

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Completer turns a system and user message pair into generated text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAI is a Completer backed by the chat completions endpoint.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds a client for model. An empty baseURL uses the public API.
func NewOpenAI(apiKey, model, baseURL string, opts ...option.RequestOption) *OpenAI {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)
	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  model,
	}
}

func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion: no choices returned")
	}
	return completion.Choices[0].Message.Content, nil
}
