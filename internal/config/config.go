package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration. It is built once
// at process entry and handed to the service being started; nothing
// reads configuration ambiently after that.
type Config struct {
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Processor ProcessorConfig `mapstructure:"processor"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GatewayConfig configures the AI gateway service.
type GatewayConfig struct {
	Host                 string   `mapstructure:"host"`
	Port                 int      `mapstructure:"port"`
	Mode                 string   `mapstructure:"mode"`
	APIKey               string   `mapstructure:"api_key"`
	APIBaseURL           string   `mapstructure:"api_base_url"`
	CORSOrigins          []string `mapstructure:"cors_origins"`
	MaxRequestsPerMinute int      `mapstructure:"max_requests_per_minute"`
	MaxTokensPerRequest  int      `mapstructure:"max_tokens_per_request"`
	RequestTimeoutSecs   int      `mapstructure:"request_timeout"`
}

// ProcessorConfig configures the chat processor service.
type ProcessorConfig struct {
	Host                  string   `mapstructure:"host"`
	Port                  int      `mapstructure:"port"`
	Mode                  string   `mapstructure:"mode"`
	AIServiceURL          string   `mapstructure:"ai_service_url"`
	BackendServiceURL     string   `mapstructure:"backend_service_url"`
	CORSOrigins           []string `mapstructure:"cors_origins"`
	MaxConcurrentRequests int      `mapstructure:"max_concurrent_requests"`
	RequestTimeoutSecs    int      `mapstructure:"request_timeout"`
}

type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"`
	Output        string `mapstructure:"output"`
	ConsoleOutput bool   `mapstructure:"console_output"`
	MaxSize       int    `mapstructure:"max_size"`
	MaxBackups    int    `mapstructure:"max_backups"`
	MaxAge        int    `mapstructure:"max_age"`
	Compress      bool   `mapstructure:"compress"`
}

// RequestTimeout returns the outbound request timeout as a duration.
func (c GatewayConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

func (c ProcessorConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// Load loads the configuration from file and environment.
func Load() (*Config, error) {
	bindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	return &cfg, nil
}

// bindEnv maps the environment variables the services have always
// used onto the nested config keys. Both services read SERVICE_HOST,
// SERVICE_PORT, CORS_ORIGINS and REQUEST_TIMEOUT; one process only
// ever runs one of them.
func bindEnv() {
	viper.BindEnv("gateway.host", "SERVICE_HOST")
	viper.BindEnv("gateway.port", "SERVICE_PORT")
	viper.BindEnv("gateway.api_key", "DEEPSEEK_API_KEY")
	viper.BindEnv("gateway.api_base_url", "DEEPSEEK_API_URL")
	viper.BindEnv("gateway.cors_origins", "CORS_ORIGINS")
	viper.BindEnv("gateway.max_requests_per_minute", "MAX_REQUESTS_PER_MINUTE")
	viper.BindEnv("gateway.max_tokens_per_request", "MAX_TOKENS_PER_REQUEST")
	viper.BindEnv("gateway.request_timeout", "REQUEST_TIMEOUT")

	viper.BindEnv("processor.host", "SERVICE_HOST")
	viper.BindEnv("processor.port", "SERVICE_PORT")
	viper.BindEnv("processor.ai_service_url", "AI_SERVICE_URL")
	viper.BindEnv("processor.backend_service_url", "BACKEND_SERVICE_URL")
	viper.BindEnv("processor.cors_origins", "CORS_ORIGINS")
	viper.BindEnv("processor.max_concurrent_requests", "MAX_CONCURRENT_REQUESTS")
	viper.BindEnv("processor.request_timeout", "REQUEST_TIMEOUT")

	viper.BindEnv("logging.level", "LOG_LEVEL")
}

func setDefaults(cfg *Config) {
	// Gateway
	if cfg.Gateway.Host == "" {
		cfg.Gateway.Host = "0.0.0.0"
	}
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = 8001
	}
	if cfg.Gateway.Mode == "" {
		cfg.Gateway.Mode = "release"
	}
	if cfg.Gateway.APIBaseURL == "" {
		cfg.Gateway.APIBaseURL = "https://api.deepseek.com/v1"
	}
	if len(cfg.Gateway.CORSOrigins) == 0 {
		cfg.Gateway.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Gateway.MaxRequestsPerMinute == 0 {
		cfg.Gateway.MaxRequestsPerMinute = 60
	}
	if cfg.Gateway.MaxTokensPerRequest == 0 {
		cfg.Gateway.MaxTokensPerRequest = 8192
	}
	if cfg.Gateway.RequestTimeoutSecs == 0 {
		cfg.Gateway.RequestTimeoutSecs = 120
	}

	// Processor
	if cfg.Processor.Host == "" {
		cfg.Processor.Host = "0.0.0.0"
	}
	if cfg.Processor.Port == 0 {
		cfg.Processor.Port = 8002
	}
	if cfg.Processor.Mode == "" {
		cfg.Processor.Mode = "release"
	}
	if cfg.Processor.AIServiceURL == "" {
		cfg.Processor.AIServiceURL = "http://localhost:8001"
	}
	if len(cfg.Processor.CORSOrigins) == 0 {
		cfg.Processor.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Processor.MaxConcurrentRequests == 0 {
		cfg.Processor.MaxConcurrentRequests = 10
	}
	if cfg.Processor.RequestTimeoutSecs == 0 {
		cfg.Processor.RequestTimeoutSecs = 120
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "logs/venusai.log"
	}
	cfg.Logging.ConsoleOutput = true
	if cfg.Logging.MaxSize == 0 {
		cfg.Logging.MaxSize = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 10
	}
	if cfg.Logging.MaxAge == 0 {
		cfg.Logging.MaxAge = 30
	}
}

// ValidateGateway checks the settings the gateway cannot run without.
// The upstream API key has no default on purpose.
func (c *Config) ValidateGateway() error {
	if c.Gateway.APIKey == "" {
		return fmt.Errorf("DEEPSEEK_API_KEY is required")
	}
	if c.Gateway.Port < 1 || c.Gateway.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Gateway.Port)
	}
	return nil
}

// ValidateProcessor checks the settings the processor cannot run without.
func (c *Config) ValidateProcessor() error {
	if c.Processor.AIServiceURL == "" {
		return fmt.Errorf("AI_SERVICE_URL must not be empty")
	}
	if c.Processor.Port < 1 || c.Processor.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Processor.Port)
	}
	return nil
}
