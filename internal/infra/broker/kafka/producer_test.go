package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Idempotent producers demand MaxOpenRequests == 1; a config that fails
// sarama's own validation would make every publisher construction error out
// and silently degrade event publishing to a no-op.
func TestProducerConfigPassesSaramaValidation(t *testing.T) {
	cfg := newProducerConfig(nil)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.True(t, cfg.Producer.Idempotent)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
}

func TestProducerConfigOverridesCallerSettings(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Net.MaxOpenRequests = 5

	got := newProducerConfig(cfg)
	require.NoError(t, got.Validate())
	assert.Equal(t, 1, got.Net.MaxOpenRequests)
}
