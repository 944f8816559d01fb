package ai

import (
	"context"
	"testing"

	"getgsa/internal/config"
	"getgsa/internal/models"

	"github.com/stretchr/testify/require"
)

func TestNewSelectsBackend(t *testing.T) {
	svc, err := New(config.Config{AIProvider: "rules"})
	require.NoError(t, err)
	require.IsType(t, &RuleService{}, svc)

	svc, err = New(config.Config{})
	require.NoError(t, err)
	require.IsType(t, &RuleService{}, svc)

	svc, err = New(config.Config{AIProvider: "anthropic"})
	require.NoError(t, err)
	require.IsType(t, &AnthropicService{}, svc)

	_, err = New(config.Config{AIProvider: "oracle"})
	require.Error(t, err)
}

func TestRuleServiceClassifyHonorsHint(t *testing.T) {
	svc, err := New(config.Config{AIProvider: "rules"})
	require.NoError(t, err)

	dt, err := svc.Classify(context.Background(), "UEI: AB12CD34EF56", "pricing")
	require.NoError(t, err)
	require.Equal(t, models.DocPricing, dt)

	dt, err = svc.Classify(context.Background(), "UEI: AB12CD34EF56", "")
	require.NoError(t, err)
	require.Equal(t, models.DocProfile, dt)
}
