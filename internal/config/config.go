package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Imdb    ImdbConfig    `mapstructure:"imdb"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ImdbConfig holds the upstream endpoint URLs and the request timeout.
// The URLs track one specific markup version of the site; they are not a
// stable protocol.
type ImdbConfig struct {
	SearchURL      string `mapstructure:"search_url"`
	TitleURL       string `mapstructure:"title_url"`
	PersonURL      string `mapstructure:"person_url"`
	FilmographyURL string `mapstructure:"filmography_url"`
	ChartURL       string `mapstructure:"chart_url"`
	InTheatersURL  string `mapstructure:"in_theaters_url"`
	ComingSoonURL  string `mapstructure:"coming_soon_url"`
	TitleSearchURL string `mapstructure:"title_search_url"`
	Timeout        int    `mapstructure:"timeout"` // seconds
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Imdb: defaultImdb(),
	}
}

func defaultImdb() ImdbConfig {
	return ImdbConfig{
		SearchURL:      "http://sg.media-imdb.com/suggests",
		TitleURL:       "http://www.imdb.com/title/",
		PersonURL:      "http://www.imdb.com/name/",
		FilmographyURL: "http://m.imdb.com/name/",
		ChartURL:       "http://www.imdb.com/chart",
		InTheatersURL:  "http://www.imdb.com/movies-in-theaters/",
		ComingSoonURL:  "http://www.imdb.com/movies-coming-soon/",
		TitleSearchURL: "https://duckduckgo.com/",
		Timeout:        30,
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.imdbscraper")
	}

	v.SetEnvPrefix("IMDBSCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.path", def.Logging.Path)

	v.SetDefault("imdb.search_url", def.Imdb.SearchURL)
	v.SetDefault("imdb.title_url", def.Imdb.TitleURL)
	v.SetDefault("imdb.person_url", def.Imdb.PersonURL)
	v.SetDefault("imdb.filmography_url", def.Imdb.FilmographyURL)
	v.SetDefault("imdb.chart_url", def.Imdb.ChartURL)
	v.SetDefault("imdb.in_theaters_url", def.Imdb.InTheatersURL)
	v.SetDefault("imdb.coming_soon_url", def.Imdb.ComingSoonURL)
	v.SetDefault("imdb.title_search_url", def.Imdb.TitleSearchURL)
	v.SetDefault("imdb.timeout", def.Imdb.Timeout)
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
