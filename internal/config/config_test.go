package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Gateway.Host)
	assert.Equal(t, 8001, cfg.Gateway.Port)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.Gateway.APIBaseURL)
	assert.Equal(t, 60, cfg.Gateway.MaxRequestsPerMinute)
	assert.Equal(t, 8192, cfg.Gateway.MaxTokensPerRequest)
	assert.Equal(t, 120, cfg.Gateway.RequestTimeoutSecs)

	assert.Equal(t, 8002, cfg.Processor.Port)
	assert.Equal(t, "http://localhost:8001", cfg.Processor.AIServiceURL)
	assert.Equal(t, 10, cfg.Processor.MaxConcurrentRequests)

	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("SERVICE_PORT", "9100")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("AI_SERVICE_URL", "http://gateway:8001")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	// SERVICE_PORT applies to whichever service this process runs.
	assert.Equal(t, 9100, cfg.Gateway.Port)
	assert.Equal(t, 9100, cfg.Processor.Port)
	assert.Equal(t, "sk-test", cfg.Gateway.APIKey)
	assert.Equal(t, "http://gateway:8001", cfg.Processor.AIServiceURL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Gateway.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateGateway(t *testing.T) {
	cfg := &Config{Gateway: GatewayConfig{Port: 8001}}
	assert.Error(t, cfg.ValidateGateway(), "missing api key must be rejected")

	cfg.Gateway.APIKey = "sk-test"
	assert.NoError(t, cfg.ValidateGateway())

	cfg.Gateway.Port = 0
	assert.Error(t, cfg.ValidateGateway())
}

func TestValidateProcessor(t *testing.T) {
	cfg := &Config{Processor: ProcessorConfig{Port: 8002}}
	assert.Error(t, cfg.ValidateProcessor(), "missing gateway url must be rejected")

	cfg.Processor.AIServiceURL = "http://localhost:8001"
	assert.NoError(t, cfg.ValidateProcessor())
}
