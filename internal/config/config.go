package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIAddr          string
	MaxDocChars      int
	MaxDocsPerSub    int
	MinSimilarity    float64
	TopK             int
	RecencyMonths    int
	MinPastPerfValue float64
	EmbedDim         int
	EmbedProviders   string
	AIProvider       string
	AnthropicModel   string
	RulePackPath     string
}

func Load() Config {
	return Config{
		APIAddr:          getenv("GETGSA_API_ADDR", ":8080"),
		MaxDocChars:      getenvInt("GETGSA_MAX_DOC_CHARS", 100000),
		MaxDocsPerSub:    getenvInt("GETGSA_MAX_DOCS_PER_SUBMISSION", 10),
		MinSimilarity:    getenvFloat("GETGSA_MIN_SIMILARITY", 0.3),
		TopK:             getenvInt("GETGSA_TOP_K", 5),
		RecencyMonths:    getenvInt("GETGSA_RECENCY_MONTHS", 36),
		MinPastPerfValue: getenvFloat("GETGSA_MIN_PP_VALUE", 25000),
		EmbedDim:         getenvInt("GETGSA_EMBED_DIM", 256),
		EmbedProviders:   getenv("GETGSA_EMBED_PROVIDERS", "tokenhash"),
		AIProvider:       getenv("GETGSA_AI_PROVIDER", "rules"),
		AnthropicModel:   getenv("GETGSA_ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		RulePackPath:     getenv("GETGSA_RULEPACK_PATH", ""),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(k string, fallback float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
