package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":5000", cfg.HTTP.Address)
	require.Equal(t, 0.3, cfg.Chat.MatchThreshold)
	require.Equal(t, "legal_faq.csv", cfg.Knowledge.Path)
}

func TestValidate_RejectsBadThreshold(t *testing.T) {
	cfg := defaultConfig()
	cfg.Chat.MatchThreshold = 1.5
	require.Error(t, cfg.Validate())
}

func TestValidate_ValkeyNeedsAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.Chat.Valkey.Enabled = true
	require.Error(t, cfg.Validate())
	cfg.Chat.Valkey.Addr = "localhost:6379"
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("CHAT_MATCH_THRESHOLD", "0.45")
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("KNOWLEDGE_CSV_PATH", "data/faq.csv")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	require.Equal(t, ":9999", cfg.HTTP.Address)
	require.Equal(t, 0.45, cfg.Chat.MatchThreshold)
	require.Equal(t, "test-key", cfg.LLM.APIKey)
	require.Equal(t, "data/faq.csv", cfg.Knowledge.Path)
}
