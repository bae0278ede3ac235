// Command storekey asks for the completion API key without echoing it and
// saves it in the OS keyring, so it does not have to live in the
// environment or .env.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bassamadnan/supportdraft/secrets"
)

func main() {
	key, err := secrets.PromptAPIKey(os.Stdin, os.Stderr)
	if errors.Is(err, secrets.ErrPromptCancelled) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading key: %v\n", err)
		os.Exit(1)
	}
	if err := secrets.SetAPIKey(key); err != nil {
		fmt.Fprintf(os.Stderr, "storing key: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "stored in keyring service %q\n", secrets.KeyringService)
}
