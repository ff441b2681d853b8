package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
	assert.Equal(t, DefaultMaxConcepts, cfg.MaxConcepts)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
		assert.Equal(t, DefaultMaxConcepts, cfg.MaxConcepts)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ChatHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithChatHost("http://chat:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://chat:9090/v1", cfg.ChatHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithChatModel("gpt-4o-mini"),
		)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	})

	t.Run("with token and rate limit", func(t *testing.T) {
		cfg := NewConfig(
			WithToken("sk-test"),
			WithRequestsPerSecond(2.5),
		)

		assert.Equal(t, "sk-test", cfg.Token)
		assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	})

	t.Run("with max concepts", func(t *testing.T) {
		cfg := NewConfig(WithMaxConcepts(5))

		assert.Equal(t, 5, cfg.MaxConcepts)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "bare host", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "already normalized", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()

			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.ChatHost)
		})
	}

	t.Run("empty token defaults to none", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Token = ""
		cfg.Normalize()

		assert.Equal(t, "none", cfg.Token)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := NewConfig()
		cfg.EmbeddingModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing chat model", func(t *testing.T) {
		cfg := NewConfig()
		cfg.ChatModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid max concepts", func(t *testing.T) {
		cfg := NewConfig(WithMaxConcepts(0))
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative rate limit", func(t *testing.T) {
		cfg := NewConfig(WithRequestsPerSecond(-1))
		assert.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes hosts", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}
