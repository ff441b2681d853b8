package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, 75.0, cfg.MinQualityScore)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Empty(t, cfg.DBPath)
	require.NotNil(t, cfg.AI)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DIDACT_OUTPUT_DIR", "/tmp/artifacts")
	t.Setenv("DIDACT_MAX_ITERATIONS", "5")
	t.Setenv("DIDACT_MIN_QUALITY_SCORE", "80.5")
	t.Setenv("DIDACT_CHUNK_SIZE", "500")
	t.Setenv("DIDACT_CHUNK_OVERLAP", "50")
	t.Setenv("DIDACT_CHAT_MODEL", "llama3")
	t.Setenv("DIDACT_GITHUB_TOKEN", "tok")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/artifacts", cfg.OutputDir)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 80.5, cfg.MinQualityScore)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, "llama3", cfg.AI.ChatModel)
	assert.Equal(t, "tok", cfg.GitHubToken)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unparseable int", func(t *testing.T) {
		t.Setenv("DIDACT_MAX_ITERATIONS", "three")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("overlap not smaller than size", func(t *testing.T) {
		t.Setenv("DIDACT_CHUNK_SIZE", "100")
		t.Setenv("DIDACT_CHUNK_OVERLAP", "100")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidChunking)
	})

	t.Run("quality score out of range", func(t *testing.T) {
		t.Setenv("DIDACT_MIN_QUALITY_SCORE", "150")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidQualityScore)
	})
}

func TestValidateClampsIterations(t *testing.T) {
	cfg := Default()
	cfg.MaxIterations = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.MaxIterations)
}
