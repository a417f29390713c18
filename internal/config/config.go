package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/garyjia/eventbus/internal/application/dispatcher"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all runner configuration
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Steps    []StepConfig   `mapstructure:"steps"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// DispatchConfig holds dispatcher configuration
type DispatchConfig struct {
	// Policy is "strict" (failures discarded) or "tolerant" (failures handled)
	Policy string `mapstructure:"policy"`
}

// StepConfig describes one demo step turned into an event
type StepConfig struct {
	Name    string `mapstructure:"name"`
	Message string `mapstructure:"message"`
	Fail    bool   `mapstructure:"fail"`
	Panic   bool   `mapstructure:"panic"`
}

// LoadEnv loads a .env file into the process environment. A missing file is
// not an error; variables already set are kept.
func LoadEnv(path string) error {
	if err := gotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "console")

	v.SetDefault("dispatch.policy", dispatcher.PolicyStrict.String())
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("logger.level", "EVENTBUS_LOG_LEVEL")
	_ = v.BindEnv("logger.output_path", "EVENTBUS_LOG_OUTPUT")
	_ = v.BindEnv("logger.format", "EVENTBUS_LOG_FORMAT")
	_ = v.BindEnv("dispatch.policy", "EVENTBUS_DISPATCH_POLICY")
}

// Policy returns the parsed dispatch policy
func (c *Config) Policy() (dispatcher.Policy, error) {
	p, err := dispatcher.ParsePolicy(c.Dispatch.Policy)
	if err != nil {
		return p, fmt.Errorf("dispatch.policy: %w", err)
	}
	return p, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logger.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	if _, err := c.Policy(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Steps))
	for i, s := range c.Steps {
		if s.Name == "" {
			return fmt.Errorf("steps[%d].name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("steps[%d].name %q is duplicated", i, s.Name)
		}
		seen[s.Name] = true
	}

	return nil
}
