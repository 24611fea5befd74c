package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/acme/voice-call-runner/pkg/errors"
)

// Config captures the full configuration surface for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Call      CallConfig      `mapstructure:"call"`
	Poll      PollConfig      `mapstructure:"poll"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type ProviderConfig struct {
	Name           string        `mapstructure:"name"`
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type CallConfig struct {
	FromNumber         string            `mapstructure:"from_number"`
	ToNumber           string            `mapstructure:"to_number"`
	DynamicVariables   map[string]string `mapstructure:"dynamic_variables"`
	ScrubSensitiveData bool              `mapstructure:"scrub_sensitive_data"`
}

type PollConfig struct {
	MaxWait  time.Duration `mapstructure:"max_wait"`
	Interval time.Duration `mapstructure:"interval"`
}

type StorageConfig struct {
	CallLogDir string `mapstructure:"call_log_dir"`
}

type TelemetryConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	ServiceName     string        `mapstructure:"service_name"`
	SampleRatio     float64       `mapstructure:"sample_ratio"`
	TracingEnabled  bool          `mapstructure:"tracing_enabled"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix("CALLRUNNER")
	v.SetEnvKeyReplacer(NewEnvReplacer())

	// Unprefixed aliases kept for compatibility with existing deployments.
	_ = v.BindEnv("provider.api_key", "CALLRUNNER_PROVIDER_API_KEY", "RETELL_API_KEY")
	_ = v.BindEnv("call.from_number", "CALLRUNNER_CALL_FROM_NUMBER", "FROM_PHONE_NUMBER")
	_ = v.BindEnv("call.to_number", "CALLRUNNER_CALL_TO_NUMBER", "TO_PHONE_NUMBER")

	v.SetDefault("provider.name", "retell")
	v.SetDefault("provider.base_url", "https://api.retellai.com")
	v.SetDefault("provider.request_timeout", 30*time.Second)
	v.SetDefault("poll.max_wait", 180*time.Second)
	v.SetDefault("poll.interval", 6*time.Second)
	v.SetDefault("storage.call_log_dir", "call_logs")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file: %w", err)
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces required options and positive poll parameters.
func (c *Config) Validate() error {
	if c.Provider.Name != "mock" && c.Provider.APIKey == "" {
		return fmt.Errorf("%w: provider.api_key is required", apperrors.ErrValidation)
	}
	if c.Call.FromNumber == "" {
		return fmt.Errorf("%w: call.from_number is required", apperrors.ErrValidation)
	}
	if c.Call.ToNumber == "" {
		return fmt.Errorf("%w: call.to_number is required", apperrors.ErrValidation)
	}
	if c.Poll.MaxWait <= 0 {
		return fmt.Errorf("%w: poll.max_wait must be positive", apperrors.ErrValidation)
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("%w: poll.interval must be positive", apperrors.ErrValidation)
	}
	if c.Storage.CallLogDir == "" {
		return fmt.Errorf("%w: storage.call_log_dir is required", apperrors.ErrValidation)
	}
	return nil
}

// NewEnvReplacer standardizes environment variable names.
func NewEnvReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_", "-", "_")
}
