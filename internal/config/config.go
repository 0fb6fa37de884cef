package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Movies   MoviesConfig   `mapstructure:"movies"`
	News     NewsConfig     `mapstructure:"news"`
}

type CacheConfig struct {
	Backend               string `mapstructure:"backend" validate:"oneof=file mysql"`
	Directory             string `mapstructure:"directory"`
	CurrencyMaxAgeSeconds int    `mapstructure:"currency_max_age_seconds" validate:"gte=0"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type WeatherConfig struct {
	BaseURL  string `mapstructure:"base_url" validate:"url"`
	City     string `mapstructure:"city"`
	Units    string `mapstructure:"units" validate:"oneof=standard metric imperial"`
	Language string `mapstructure:"language"`
	APIKey   string `mapstructure:"api_key"`
}

type CurrencyConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"url"`
	Source  string `mapstructure:"source" validate:"currency_code"`
	Local   string `mapstructure:"local" validate:"currency_code"`
	APIKey  string `mapstructure:"api_key"`
}

type MoviesConfig struct {
	BaseURL  string `mapstructure:"base_url" validate:"url"`
	Language string `mapstructure:"language"`
	Region   string `mapstructure:"region"`
	APIKey   string `mapstructure:"api_key"`
}

type NewsConfig struct {
	BaseURL   string `mapstructure:"base_url" validate:"url"`
	Country   string `mapstructure:"country"`
	Language  string `mapstructure:"language"`
	SeenLimit int    `mapstructure:"seen_limit" validate:"gt=0"`
	APIKey    string `mapstructure:"api_key"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/panorama")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.directory", filepath.Join("cache"))
	v.SetDefault("cache.currency_max_age_seconds", 0)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "panorama")
	v.SetDefault("database.username", "user")
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.city", "Punta del Este,UY")
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.language", "es")
	v.SetDefault("currency.base_url", "http://api.currencylayer.com")
	v.SetDefault("currency.source", "USD")
	v.SetDefault("currency.local", "UYU")
	v.SetDefault("movies.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("movies.language", "es-ES")
	v.SetDefault("movies.region", "US")
	v.SetDefault("news.base_url", "https://newsdata.io/api/1")
	v.SetDefault("news.country", "uy")
	v.SetDefault("news.language", "es")
	v.SetDefault("news.seen_limit", 1024)

	// API keys come from the environment only, never from the config file
	if err := v.BindEnv("weather.api_key", "OPENWEATHER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENWEATHER_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("currency.api_key", "CURRENCYLAYER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind CURRENCYLAYER_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("movies.api_key", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind TMDB_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("news.api_key", "NEWSDATA_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind NEWSDATA_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
