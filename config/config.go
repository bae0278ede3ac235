package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultSettingsPath is where the entry points look for settings.
	DefaultSettingsPath = "config/settings.yaml"

	envPrefix = "SUPPORTDRAFT"
)

// GmailSettings configures the mailbox side of a run.
type GmailSettings struct {
	User            string   `mapstructure:"user"`
	CredentialsFile string   `mapstructure:"credentials_file"`
	TokenFile       string   `mapstructure:"token_file"`
	ProcessedLabel  string   `mapstructure:"processed_label"`
	ExcludeLabels   []string `mapstructure:"exclude_labels"`
	Sender          string   `mapstructure:"sender"`
}

// Filters defines senders and subjects that are never answered.
type Filters struct {
	IgnoreSenders         []string `mapstructure:"ignore_senders"`
	IgnoreSubjectKeywords []string `mapstructure:"ignore_subject_keywords"`
}

// DocsSettings points at the instructions document.
type DocsSettings struct {
	InstructionsDocumentID string `mapstructure:"instructions_document_id"`
}

// OpenAISettings configures the completion service.
type OpenAISettings struct {
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	BaseURL   string `mapstructure:"base_url"`
}

type ResponsesSettings struct {
	File string `mapstructure:"file"`
}

// AutoReplySettings drives the info auto-responder.
type AutoReplySettings struct {
	Subject string `mapstructure:"subject"`
	Limit   int    `mapstructure:"limit"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Settings is the top-level configuration shared by all entry points.
type Settings struct {
	Gmail     GmailSettings     `mapstructure:"gmail"`
	Filters   Filters           `mapstructure:"filters"`
	Docs      DocsSettings      `mapstructure:"docs"`
	OpenAI    OpenAISettings    `mapstructure:"openai"`
	Responses ResponsesSettings `mapstructure:"responses"`
	AutoReply AutoReplySettings `mapstructure:"autoreply"`
	Log       LogSettings       `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gmail.user", "me")
	v.SetDefault("gmail.credentials_file", "credentials.json")
	v.SetDefault("gmail.token_file", "token.json")
	v.SetDefault("gmail.processed_label", "DRAFTED")
	v.SetDefault("gmail.exclude_labels", []string{"DRAFT", "SENT"})
	v.SetDefault("gmail.sender", "")
	v.SetDefault("filters.ignore_senders", []string{})
	v.SetDefault("filters.ignore_subject_keywords", []string{})
	v.SetDefault("docs.instructions_document_id", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("responses.file", "responses.json")
	v.SetDefault("autoreply.subject", "info")
	v.SetDefault("autoreply.limit", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "supportdraft.log")
}

// Load reads settings from the YAML file at path, layered under
// SUPPORTDRAFT_* environment variables. A missing file is not an error.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if s.AutoReply.Limit < 0 {
		return nil, fmt.Errorf("autoreply.limit must not be negative, got %d", s.AutoReply.Limit)
	}
	return &s, nil
}
