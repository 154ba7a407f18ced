package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Clay      ClayConfig      `yaml:"clay" mapstructure:"clay"`
	Instantly InstantlyConfig `yaml:"instantly" mapstructure:"instantly"`
	Discover  DiscoverConfig  `yaml:"discover" mapstructure:"discover"`
	Resolver  ResolverConfig  `yaml:"resolver" mapstructure:"resolver"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the persistence backends.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	RunDB       string `yaml:"run_db" mapstructure:"run_db"`
}

// ClayConfig holds Clay enrichment API settings.
type ClayConfig struct {
	Key          string   `yaml:"key" mapstructure:"key"`
	BaseURL      string   `yaml:"base_url" mapstructure:"base_url"`
	RateLimit    float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	TargetTitles []string `yaml:"target_titles" mapstructure:"target_titles"`
	SearchLimit  int      `yaml:"search_limit" mapstructure:"search_limit"`
}

// InstantlyConfig holds Instantly campaign API settings.
type InstantlyConfig struct {
	Key       string            `yaml:"key" mapstructure:"key"`
	BaseURL   string            `yaml:"base_url" mapstructure:"base_url"`
	RateLimit float64           `yaml:"rate_limit" mapstructure:"rate_limit"`
	Campaigns map[string]string `yaml:"campaigns" mapstructure:"campaigns"`
}

// DiscoverConfig configures the district discovery stage.
type DiscoverConfig struct {
	OutputDir      string  `yaml:"output_dir" mapstructure:"output_dir"`
	RateLimit      float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	TribuneBaseURL string  `yaml:"tribune_base_url" mapstructure:"tribune_base_url"`
	WikipediaURL   string  `yaml:"wikipedia_url" mapstructure:"wikipedia_url"`
	NCESURL        string  `yaml:"nces_url" mapstructure:"nces_url"`
}

// ResolverConfig configures domain resolution.
type ResolverConfig struct {
	ProbeTimeoutSecs int               `yaml:"probe_timeout_secs" mapstructure:"probe_timeout_secs"`
	ProbeRate        float64           `yaml:"probe_rate" mapstructure:"probe_rate"`
	Overrides        map[string]string `yaml:"overrides" mapstructure:"overrides"`
}

// LogConfig configures logging output.
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

	// Environment variables
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.run_db", "leadgen_runs.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("clay.base_url", "https://api.clay.com/v1")
	v.SetDefault("clay.rate_limit", 1.0)
	v.SetDefault("clay.search_limit", 10)
	v.SetDefault("clay.target_titles", []string{
		"Superintendent",
		"Director of Safety",
		"Chief of Safety",
		"Director of Security",
		"Chief Operations Officer",
		"COO",
		"Assistant Superintendent",
		"Chief of Police",
		"Director of Student Safety",
	})
	v.SetDefault("instantly.base_url", "https://api.instantly.ai/api/v1")
	v.SetDefault("instantly.rate_limit", 2.0)
	v.SetDefault("instantly.campaigns", map[string]string{
		"superintendent":  "camp_tx_superintendents_q1_2026",
		"safety_director": "camp_tx_safety_directors_q1_2026",
	})
	v.SetDefault("discover.output_dir", ".")
	v.SetDefault("discover.rate_limit", 2.0)
	v.SetDefault("discover.tribune_base_url", "https://schools.texastribune.org")
	v.SetDefault("discover.wikipedia_url", "https://en.wikipedia.org/wiki/List_of_school_districts_in_Texas")
	v.SetDefault("discover.nces_url", "https://nces.ed.gov/ccd/districtsearch/district_list.asp")
	v.SetDefault("resolver.probe_timeout_secs", 3)
	v.SetDefault("resolver.probe_rate", 2.0)

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
