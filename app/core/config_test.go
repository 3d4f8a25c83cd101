package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupConfigFromEnv(t *testing.T) {
	addr := "localhost:11111"
	os.Setenv("STUDYHALL_API_SERVICE_ADDRESS", addr)

	cfg := LoadBaseConfigFromENV()

	assert.Equal(t, cfg.Addr, addr)
}

func TestAssistantConfigDefaults(t *testing.T) {
	var c AssistantConfig
	assert.Equal(t, 300, c.GenerateTimeoutOrDefault())
	assert.Equal(t, 30, c.HistoryLimitOrDefault())

	c.GenerateTimeout = 60
	c.HistoryLimit = 10
	assert.Equal(t, 60, c.GenerateTimeoutOrDefault())
	assert.Equal(t, 10, c.HistoryLimitOrDefault())
}
