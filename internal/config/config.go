// Package config loads recruit settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvConfigFile overrides the default config file location.
const EnvConfigFile = "RECRUIT_CONFIG"

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// DefaultFile returns $RECRUIT_CONFIG or ~/.recruit/config.yaml.
func DefaultFile() string {
	if f := os.Getenv(EnvConfigFile); f != "" {
		return f
	}
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load reads file (when it exists) and the environment into a Config.
// A missing file is not an error; every setting has a default.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	config.Storage.Dir = expandHome(config.Storage.Dir)
	if config.API.WebURL == "" {
		config.API.WebURL = deriveWebURL(config.API.BaseURL)
	}
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")
	config.API.WebURL = strings.TrimRight(config.API.WebURL, "/")

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.web_url", "")
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.requests_per_second", 0)
	v.SetDefault("storage.dir", defaultDataDir())
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.output_file", "recruit.log")
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	api, storage, logger := APIConfig{}, StorageConfig{}, LoggerConfig{}

	if err := api.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("APIConfig: %w", err))
	}

	if err := storage.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("StorageConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recruit"
	}
	return filepath.Join(home, ".recruit")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
