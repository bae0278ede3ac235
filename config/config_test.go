package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "me", s.Gmail.User)
	assert.Equal(t, "DRAFTED", s.Gmail.ProcessedLabel)
	assert.Equal(t, []string{"DRAFT", "SENT"}, s.Gmail.ExcludeLabels)
	assert.Equal(t, "gpt-4o-mini", s.OpenAI.Model)
	assert.Equal(t, "OPENAI_API_KEY", s.OpenAI.APIKeyEnv)
	assert.Equal(t, "responses.json", s.Responses.File)
	assert.Equal(t, "info", s.AutoReply.Subject)
	assert.Equal(t, 5, s.AutoReply.Limit)
	assert.Equal(t, "info", s.Log.Level)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	yaml := `
gmail:
  processed_label: HANDLED
  sender: support@example.com
filters:
  ignore_senders: [noreply@example.com]
docs:
  instructions_document_id: doc-123
openai:
  model: gpt-4o
autoreply:
  limit: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "HANDLED", s.Gmail.ProcessedLabel)
	assert.Equal(t, "support@example.com", s.Gmail.Sender)
	assert.Equal(t, "me", s.Gmail.User)
	assert.Equal(t, []string{"noreply@example.com"}, s.Filters.IgnoreSenders)
	assert.Equal(t, "doc-123", s.Docs.InstructionsDocumentID)
	assert.Equal(t, "gpt-4o", s.OpenAI.Model)
	assert.Equal(t, 10, s.AutoReply.Limit)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai:\n  model: gpt-4o\n"), 0o644))
	t.Setenv("SUPPORTDRAFT_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("SUPPORTDRAFT_DOCS_INSTRUCTIONS_DOCUMENT_ID", "env-doc")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", s.OpenAI.Model)
	assert.Equal(t, "env-doc", s.Docs.InstructionsDocumentID)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gmail: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("autoreply:\n  limit: -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
