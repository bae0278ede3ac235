// Package secrets resolves the completion service API key.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	KeyringService = "supportdraft"
	KeyringUser    = "openai"
)

// APIKey returns the key from the envName environment variable, or from the
// OS keyring when the variable is unset or blank.
func APIKey(envName string) (string, error) {
	if envName != "" {
		if key := strings.TrimSpace(os.Getenv(envName)); key != "" {
			return key, nil
		}
	}
	key, err := keyring.Get(KeyringService, KeyringUser)
	if err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("reading API key from keyring: %w", err)
	}
	return "", fmt.Errorf("API key not found (set %s or store it in the keyring)", envName)
}

// SetAPIKey stores key in the OS keyring.
func SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, KeyringUser, key)
}
