// Package services wires settings, logging, credentials and the provider
// clients shared by every entry point.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/bassamadnan/supportdraft/compose"
	"github.com/bassamadnan/supportdraft/config"
	"github.com/bassamadnan/supportdraft/docs"
	"github.com/bassamadnan/supportdraft/gmail"
	"github.com/bassamadnan/supportdraft/logging"
	"github.com/bassamadnan/supportdraft/oauth"
	"github.com/bassamadnan/supportdraft/secrets"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	docsapi "google.golang.org/api/docs/v1"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Scopes covers every entry point so they can share one cached token.
var Scopes = []string{gmailapi.MailGoogleComScope, docsapi.DocumentsReadonlyScope}

// Paths locates the files read during setup.
type Paths struct {
	Settings string
	DotEnv   string
}

func DefaultPaths() Paths {
	return Paths{Settings: config.DefaultSettingsPath, DotEnv: ".env"}
}

// Env holds everything a run needs. Close releases the log file.
type Env struct {
	Settings  *config.Settings
	Log       zerolog.Logger
	Completer *compose.OpenAI

	gmail  *gmailapi.Service
	docs   *docsapi.Service
	closer io.Closer
}

// Setup loads configuration and connects to Gmail, Docs and the completion
// service. The OAuth consent step, if needed, prompts on stdout and reads
// the code from stdin.
func Setup(ctx context.Context, paths Paths) (*Env, error) {
	if err := godotenv.Load(paths.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", paths.DotEnv, err)
	}
	settings, err := config.Load(paths.Settings)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(settings.Log.Level, settings.Log.File, os.Stderr)
	if err != nil {
		return nil, err
	}
	env := &Env{Settings: settings, Log: logger, closer: closer}

	if err := env.connect(ctx); err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

func (e *Env) connect(ctx context.Context) error {
	apiKey, err := secrets.APIKey(e.Settings.OpenAI.APIKeyEnv)
	if err != nil {
		return err
	}
	e.Completer = compose.NewOpenAI(apiKey, e.Settings.OpenAI.Model, e.Settings.OpenAI.BaseURL)

	flow := &oauth.Flow{
		CredentialsFile: e.Settings.Gmail.CredentialsFile,
		TokenFile:       e.Settings.Gmail.TokenFile,
		Scopes:          Scopes,
		Prompt:          os.Stdout,
		In:              os.Stdin,
	}
	httpClient, err := flow.HTTPClient(ctx)
	if err != nil {
		return err
	}

	if e.gmail, err = gmailapi.NewService(ctx, option.WithHTTPClient(httpClient)); err != nil {
		return fmt.Errorf("unable to create Gmail service: %w", err)
	}
	if e.docs, err = docsapi.NewService(ctx, option.WithHTTPClient(httpClient)); err != nil {
		return fmt.Errorf("unable to create Docs service: %w", err)
	}
	e.Log.Debug().Str("model", e.Settings.OpenAI.Model).Msg("services connected")
	return nil
}

// Mailbox returns the mailbox adapter configured from settings.
func (e *Env) Mailbox() *gmail.Mailbox {
	return gmail.NewMailbox(e.gmail, gmail.Options{
		User:           e.Settings.Gmail.User,
		ProcessedLabel: e.Settings.Gmail.ProcessedLabel,
		Sender:         e.Settings.Gmail.Sender,
		Logger:         e.Log.With().Str("component", "gmail").Logger(),
	})
}

func (e *Env) DocsReader() *docs.Reader {
	return docs.NewReader(e.docs, e.Log.With().Str("component", "docs").Logger())
}

func (e *Env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}
