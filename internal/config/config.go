package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Credential verifiers.
const (
	VerifierPlaintext = "plaintext"
	VerifierBcrypt    = "bcrypt"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	// Backend selects where the durable slots live: "file" keeps one file
	// per slot under Dir, "sqlite" keeps all slots in the database at Path.
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	Path    string `mapstructure:"path"`
}

type AuthConfig struct {
	Verifier string `mapstructure:"verifier"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads an optional config.yaml and DENTAL_* environment
// overrides. A missing config file is fine; defaults cover everything.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("DENTAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("storage.backend", BackendFile)
	viper.SetDefault("storage.dir", "./data")
	viper.SetDefault("storage.path", "./data/dental-center.db")
	viper.SetDefault("auth.verifier", VerifierPlaintext)
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch config.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}
	switch config.Auth.Verifier {
	case VerifierPlaintext, VerifierBcrypt:
	default:
		return nil, fmt.Errorf("unknown credential verifier %q", config.Auth.Verifier)
	}

	return &config, nil
}
