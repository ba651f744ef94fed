package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnwatch/risk-service/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.GRPCAddress())
	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "risk.assessments", cfg.EventsTopic)
	assert.True(t, cfg.HighBillThreshold.Equal(decimal.NewFromInt(80)))
	assert.True(t, cfg.WatchArtifact)
	assert.False(t, cfg.TLSEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7001")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("HIGH_BILL_THRESHOLD", "120.50")
	t.Setenv("MODEL_ARTIFACT_WATCH", "false")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.GRPCAddress())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.HighBillThreshold.Equal(decimal.RequireFromString("120.50")))
	assert.False(t, cfg.WatchArtifact)
}

func TestLoad_RejectsBadThreshold(t *testing.T) {
	t.Setenv("HIGH_BILL_THRESHOLD", "lots")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("HIGH_BILL_THRESHOLD", "-5")

	_, err = config.Load()
	require.Error(t, err)
}
