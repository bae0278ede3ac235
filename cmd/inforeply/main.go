// Command inforeply answers unread emails with the configured subject
// (default "info") right away and marks them read.
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
		env.Log.Error().Err(err).Msg("unable to load canned responses")
		env.Close()
		os.Exit(1)
	}

	responder := &workflow.Responder{
		Mailbox:  env.Mailbox(),
		Composer: compose.NewCategoryComposer(env.Completer, catalog, env.Log.With().Str("component", "compose").Logger()),
		Subject:  env.Settings.AutoReply.Subject,
		Limit:    env.Settings.AutoReply.Limit,
		Reporter: workflow.NewReporter(os.Stdout),
		Log:      env.Log,
	}
	summary, err := responder.Run(ctx)
	if err != nil {
		env.Log.Error().Err(err).Msg("auto-reply run failed")
		env.Close()
		os.Exit(1)
	}
	env.Log.Info().Interface("summary", summary).Msg("auto-reply run finished")
}
