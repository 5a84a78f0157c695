package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jwalitptl/emr-records/pkg/datefmt"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"db"`
	Dates    DatesConfig    `mapstructure:"dob"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateBurst      int     `mapstructure:"rate_burst"`
}

// DatabaseConfig holds the three connection settings. URL selects the
// driver by scheme.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type DatesConfig struct {
	Ambiguous string `mapstructure:"ambiguous"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

const envPrefix = "EMR"

// Defaults
const (
	DefaultDatabaseURL  = "sqlite://emr.db"
	DefaultDatabaseUser = "root"
	DefaultHTTPPort     = 8080
)

// Policy returns the configured ambiguous date policy.
func (c DatesConfig) Policy() (datefmt.Policy, error) {
	return datefmt.ParsePolicy(c.Ambiguous)
}

// New builds a viper instance with defaults and EMR_ environment
// bindings, e.g. EMR_DB_URL for db.url.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("http.port", DefaultHTTPPort)
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.rate_limit", 50.0)
	v.SetDefault("http.rate_burst", 100)
	v.SetDefault("db.url", DefaultDatabaseURL)
	v.SetDefault("db.user", DefaultDatabaseUser)
	v.SetDefault("db.password", "")
	v.SetDefault("dob.ambiguous", string(datefmt.PolicyLegacy))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads the optional config file and environment. A missing
// config file is not an error.
func LoadConfig() (*Config, error) {
	return Load(New())
}

func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := config.Dates.Policy(); err != nil {
		return nil, fmt.Errorf("invalid dob.ambiguous: %w", err)
	}

	return &config, nil
}
