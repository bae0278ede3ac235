// Command supportdraft drafts replies to this week's unanswered support
// emails, using the instructions document as guidance for every reply.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassamadnan/supportdraft/compose"
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
	env.Log.Info().Msg("instruction-driven drafting starting")

	instructions, err := env.DocsReader().ReadInstructions(ctx, env.Settings.Docs.InstructionsDocumentID)
	if err != nil {
		env.Log.Error().Err(err).Msg("unable to load reply instructions")
		env.Close()
		os.Exit(1)
	}

	drafter := &workflow.Drafter{
		Mailbox:       env.Mailbox(),
		Composer:      compose.NewInstructionComposer(env.Completer, instructions),
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
