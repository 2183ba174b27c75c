package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.StorageMode)
	assert.Equal(t, "staybook", cfg.MongoDB)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, 12.0, cfg.ServiceFeePercent)
	assert.Equal(t, int64(2500), cfg.CleaningFeeCents)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadMongoRequiresURI(t *testing.T) {
	t.Setenv("STORAGE_MODE", "mongo")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.StorageMode)
}

func TestLoadRejectsUnknownStorageMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "postgres")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-a:9092,broker-b:9092")
	t.Setenv("SERVICE_FEE_PERCENT", "8.5")
	t.Setenv("CLEANING_FEE_CENTS", "1500")
	t.Setenv("SHUTDOWN_TIMEOUT", "12s")
	t.Setenv("DEFAULT_CURRENCY", "eur")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 8.5, cfg.ServiceFeePercent)
	assert.Equal(t, int64(1500), cfg.CleaningFeeCents)
	assert.Equal(t, 12*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
}

func TestLoadRejectsBadCurrency(t *testing.T) {
	t.Setenv("DEFAULT_CURRENCY", "EURO")
	_, err := Load()
	require.Error(t, err)
}
