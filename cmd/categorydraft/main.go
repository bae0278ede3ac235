// Command categorydraft drafts replies to this week's unanswered support
// emails from the canned response catalog, classifying each email first.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassamadnan/supportdraft/compose"
	"github.com/bassamadnan/supportdraft/config"
	"github.com/bassamadnan/supportdraft/services"
	"github.com/bassamadnan/supportdraft/workflow"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := services.Setup(ctx, services.DefaultPaths())
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	catalog, err := config.NewCatalog(env.Settings.Responses.File)
	if err != nil {
		env.Log.Error().Err(err).Str("file", env.Settings.Responses.File).Msg("unable to load canned responses")
		env.Close()
		os.Exit(1)
	}
	env.Log.Info().Int("responses", catalog.Len()).Msg("category-driven drafting starting")

	drafter := &workflow.Drafter{
		Mailbox:       env.Mailbox(),
		Composer:      compose.NewCategoryComposer(env.Completer, catalog, env.Log.With().Str("component", "compose").Logger()),
		ExcludeLabels: env.Settings.Gmail.ExcludeLabels,
		Filters:       env.Settings.Filters,
		Reporter:      workflow.NewReporter(os.Stdout),
		Log:           env.Log,
	}
	summary, err := drafter.Run(ctx)
	if err != nil {
		env.Log.Error().Err(err).Msg("drafting run failed")
		env.Close()
		os.Exit(1)
	}
	env.Log.Info().Interface("summary", summary).Msg("drafting run finished")
}
