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
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Chart    ChartConfig    `yaml:"chart" mapstructure:"chart"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	MaxPoints   int      `yaml:"max_points" mapstructure:"max_points"`
}

// ChartConfig configures chart rendering.
type ChartConfig struct {
	Mode         string        `yaml:"mode" mapstructure:"mode"`
	Format       string        `yaml:"format" mapstructure:"format"`
	WidthCM      float64       `yaml:"width_cm" mapstructure:"width_cm"`
	HeightCM     float64       `yaml:"height_cm" mapstructure:"height_cm"`
	CacheEntries int           `yaml:"cache_entries" mapstructure:"cache_entries"`
	CacheTTL     time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ClassifyConfig configures batch classification.
type ClassifyConfig struct {
	Workers           int `yaml:"workers" mapstructure:"workers"`
	ParallelThreshold int `yaml:"parallel_threshold" mapstructure:"parallel_threshold"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SBT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_points", 100000)
	v.SetDefault("chart.mode", "colored")
	v.SetDefault("chart.format", "png")
	v.SetDefault("chart.width_cm", 16)
	v.SetDefault("chart.height_cm", 14)
	v.SetDefault("chart.cache_entries", 128)
	v.SetDefault("chart.cache_ttl", "10m")
	v.SetDefault("classify.workers", 4)
	v.SetDefault("classify.parallel_threshold", 10000)

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

// Validate checks the settings a command mode depends on.
// Modes: "classify", "chart", "serve".
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "classify":
		problems = append(problems, c.validateClassify()...)
	case "chart":
		problems = append(problems, c.validateChart()...)
	case "serve":
		problems = append(problems, c.validateClassify()...)
		problems = append(problems, c.validateChart()...)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimit < 0 {
			problems = append(problems, "server.rate_limit must be >= 0")
		}
		if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
			problems = append(problems, "server.rate_burst must be >= 1 when rate limiting is enabled")
		}
		if c.Server.MaxPoints <= 0 {
			problems = append(problems, "server.max_points must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) validateClassify() []string {
	var problems []string
	if c.Classify.Workers < 1 || c.Classify.Workers > 256 {
		problems = append(problems, "classify.workers must be between 1 and 256")
	}
	if c.Classify.ParallelThreshold < 0 {
		problems = append(problems, "classify.parallel_threshold must be >= 0")
	}
	return problems
}

func (c *Config) validateChart() []string {
	var problems []string
	switch strings.ToLower(c.Chart.Mode) {
	case "colored", "coloured", "c", "outline", "w":
	default:
		problems = append(problems, "chart.mode must be colored or outline")
	}
	switch strings.ToLower(c.Chart.Format) {
	case "png", "svg":
	default:
		problems = append(problems, "chart.format must be png or svg")
	}
	if c.Chart.WidthCM <= 0 || c.Chart.HeightCM <= 0 {
		problems = append(problems, "chart.width_cm and chart.height_cm must be > 0")
	}
	if c.Chart.CacheEntries < 0 {
		problems = append(problems, "chart.cache_entries must be >= 0")
	}
	return problems
}
