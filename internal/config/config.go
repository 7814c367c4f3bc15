package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env    string `mapstructure:"env"` // current application environment (local, dev, prod etc)
	DB     DB     `mapstructure:"database"`
	Corpus Corpus `mapstructure:"corpus"`
	Daily  Daily  `mapstructure:"daily"`
	Quiz   Quiz   `mapstructure:"quiz"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Corpus points to the initial content files loaded on first run.
type Corpus struct {
	WordsPath   string `mapstructure:"words_path"`
	GrammarPath string `mapstructure:"grammar_path"`
}

// Daily tunes the daily assignment engine.
type Daily struct {
	WordLimit int `mapstructure:"word_limit"` // size of the per-day study set
}

// Quiz tunes quiz generation.
type Quiz struct {
	WordCount       int  `mapstructure:"word_count"`        // word questions per full quiz
	GrammarCount    int  `mapstructure:"grammar_count"`     // grammar questions per full quiz
	TodayPoolSize   int  `mapstructure:"today_pool_size"`   // oversampling size for the today pool
	AllPoolFallback bool `mapstructure:"all_pool_fallback"` // widen an empty "all" pool to the full corpus
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("corpus.words_path", "assets/data/words_n5.json")
	v.SetDefault("corpus.grammar_path", "assets/data/grammar_n5.json")
	v.SetDefault("daily.word_limit", 5)
	v.SetDefault("quiz.word_count", 7)
	v.SetDefault("quiz.grammar_count", 3)
	v.SetDefault("quiz.today_pool_size", 10)
	v.SetDefault("quiz.all_pool_fallback", true)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
