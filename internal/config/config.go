// Package config loads application configuration from file and environment
// and bootstraps the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Relay  RelayConfig  `yaml:"relay" mapstructure:"relay"`
	Scrape ScrapeConfig `yaml:"scrape" mapstructure:"scrape"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// RelayConfig holds bypass-relay settings. An empty key puts fetching in
// degraded direct mode.
type RelayConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	Country    string `yaml:"country" mapstructure:"country"`
	WaitMillis int    `yaml:"wait_millis" mapstructure:"wait_millis"`
}

// ScrapeConfig configures retry, pagination, and pacing behavior.
type ScrapeConfig struct {
	MaxReviews     int `yaml:"max_reviews" mapstructure:"max_reviews"`
	RetryAttempts  int `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryDelaySecs int `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
	PageDelaySecs  int `yaml:"page_delay_secs" mapstructure:"page_delay_secs"`
	JobDelaySecs   int `yaml:"job_delay_secs" mapstructure:"job_delay_secs"`
}

// RetryDelay returns the inter-attempt delay as a duration.
func (c ScrapeConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySecs) * time.Second
}

// PageDelay returns the courtesy delay between page fetches.
func (c ScrapeConfig) PageDelay() time.Duration {
	return time.Duration(c.PageDelaySecs) * time.Second
}

// JobDelay returns the spacing between batch jobs.
func (c ScrapeConfig) JobDelay() time.Duration {
	return time.Duration(c.JobDelaySecs) * time.Second
}

// OutputConfig configures where result files are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the scrape webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REVIEWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key gets one so env-only overrides survive Unmarshal.
	v.SetDefault("relay.key", "")
	v.SetDefault("relay.base_url", "http://api.scraperapi.com")
	v.SetDefault("relay.country", "us")
	v.SetDefault("relay.wait_millis", 2000)
	v.SetDefault("scrape.max_reviews", 100)
	v.SetDefault("scrape.retry_attempts", 3)
	v.SetDefault("scrape.retry_delay_secs", 3)
	v.SetDefault("scrape.page_delay_secs", 5)
	v.SetDefault("scrape.job_delay_secs", 10)
	v.SetDefault("output.dir", "output")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
