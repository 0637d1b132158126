// Package config loads application configuration from an optional
// config.yaml, a .env file, and FILLEDCARD_* environment variables.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Scrape ScrapeConfig `yaml:"scrape" mapstructure:"scrape"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ScrapeConfig configures the registry scrapers.
type ScrapeConfig struct {
	NDCAMembersURL    string `yaml:"ndca_members_url" mapstructure:"ndca_members_url"`
	O2CMBaseURL       string `yaml:"o2cm_base_url" mapstructure:"o2cm_base_url"`
	OutputDir         string `yaml:"output_dir" mapstructure:"output_dir"`
	TimeoutSecs       int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries        int    `yaml:"max_retries" mapstructure:"max_retries"`
	RenderTimeoutSecs int    `yaml:"render_timeout_secs" mapstructure:"render_timeout_secs"`
	UserAgent         string `yaml:"user_agent" mapstructure:"user_agent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	// Env files are optional; .env.local wins over .env.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FILLEDCARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scrape.ndca_members_url", "https://ndca.org/members/")
	v.SetDefault("scrape.o2cm_base_url", "https://o2cm.com")
	v.SetDefault("scrape.output_dir", "output")
	v.SetDefault("scrape.timeout_secs", 15)
	v.SetDefault("scrape.max_retries", 3)
	v.SetDefault("scrape.render_timeout_secs", 30)

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

	if cfg.Store.DatabaseURL == "" {
		cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return &cfg, nil
}

// Validate checks that the settings a command depends on are present.
// Modes: "scrape" needs nothing beyond defaults; "import" and "migrate"
// need a reachable store.
func (c *Config) Validate(mode string) error {
	switch mode {
	case "scrape":
		if c.Scrape.OutputDir == "" {
			return eris.New("config: scrape.output_dir is required")
		}
		return nil
	case "import", "migrate":
		if c.Store.Driver != "sqlite" && c.Store.DatabaseURL == "" {
			return eris.New("config: store.database_url is required (set FILLEDCARD_STORE_DATABASE_URL or DATABASE_URL)")
		}
		if c.Store.Driver == "sqlite" && c.Store.DatabaseURL == "" {
			return eris.New("config: store.database_url must be a sqlite file path")
		}
		return nil
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}
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
