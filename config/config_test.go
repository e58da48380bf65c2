package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
upload_dir: "data"
mongo_database: "testdb"
ai:
  base_url: "http://localhost:1234/v1"
  deployment: "gpt-4o-mini"
  max_answer_tokens: 800
ranking:
  min_token_length: 3
  window_before: 1000
  window_after: 4000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "data", cfg.UploadDir)
	assert.Equal(t, "testdb", cfg.MongoDatabase)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Deployment)
	assert.Equal(t, 800, cfg.AI.MaxAnswerTokens)
	assert.Equal(t, 3, cfg.Ranking.MinTokenLength)
	assert.Equal(t, 1000, cfg.Ranking.WindowBefore)
	assert.Equal(t, 4000, cfg.Ranking.WindowAfter)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
ai:
  base_url: "http://localhost:1234/v1"
  deployment: "gpt-4o-mini"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 500, cfg.AI.MaxAnswerTokens)
	assert.Equal(t, 2, cfg.Ranking.MinTokenLength)
	assert.Equal(t, 500, cfg.Ranking.WindowBefore)
	assert.Equal(t, 1500, cfg.Ranking.WindowAfter)
	assert.Equal(t, 2000, cfg.Ranking.NoMatchPrefix)
	assert.Equal(t, 2, cfg.Ranking.LowScoreThreshold)
	assert.Equal(t, 3, cfg.Ranking.TopChunks)
}

func TestLoadConfig_SecretFromEnv(t *testing.T) {
	t.Setenv("AZURE_OPENAI_KEY", "env-secret")
	path := writeConfig(t, `
ai:
  base_url: "http://localhost:1234/v1"
  deployment: "gpt-4o-mini"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.AI.APIKey)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
