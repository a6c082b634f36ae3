package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type logLevel string

const (
	LevelInfo    logLevel = "INFO"
	LevelDebug   logLevel = "DEBUG"
	LevelWarning logLevel = "WARNING"
	LevelError   logLevel = "ERROR"
	LevelFatal   logLevel = "FATAL"
)

type LoggerConfig struct {
	LogLevel   logLevel `mapstructure:"log_level" validate:"required,oneof=INFO DEBUG WARNING ERROR FATAL"`
	OutputFile string   `mapstructure:"output_file" validate:"required"`
}

// Path resolves OutputFile against dir unless it is already absolute.
func (config LoggerConfig) Path(dir string) string {
	if filepath.IsAbs(config.OutputFile) {
		return config.OutputFile
	}
	return filepath.Join(dir, config.OutputFile)
}

func (config LoggerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("logger.log_level", "LOG_LEVEL")
}
