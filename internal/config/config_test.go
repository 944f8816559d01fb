package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, ":8080", cfg.APIAddr)
	require.Equal(t, 100000, cfg.MaxDocChars)
	require.Equal(t, 10, cfg.MaxDocsPerSub)
	require.Equal(t, 0.3, cfg.MinSimilarity)
	require.Equal(t, 5, cfg.TopK)
	require.Equal(t, 36, cfg.RecencyMonths)
	require.Equal(t, 25000.0, cfg.MinPastPerfValue)
	require.Equal(t, 256, cfg.EmbedDim)
	require.Equal(t, "tokenhash", cfg.EmbedProviders)
	require.Equal(t, "rules", cfg.AIProvider)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GETGSA_TOP_K", "3")
	t.Setenv("GETGSA_MIN_SIMILARITY", "0.5")
	t.Setenv("GETGSA_AI_PROVIDER", "anthropic")
	cfg := Load()
	require.Equal(t, 3, cfg.TopK)
	require.Equal(t, 0.5, cfg.MinSimilarity)
	require.Equal(t, "anthropic", cfg.AIProvider)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("GETGSA_TOP_K", "lots")
	t.Setenv("GETGSA_MIN_SIMILARITY", "very")
	cfg := Load()
	require.Equal(t, 5, cfg.TopK)
	require.Equal(t, 0.3, cfg.MinSimilarity)
}
