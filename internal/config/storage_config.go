package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type StorageConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// DBPath is the SQLite file holding the local key/value store.
func (config StorageConfig) DBPath() string {
	return filepath.Join(config.Dir, "recruit.db")
}

func (config StorageConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("storage.dir", "RECRUIT_DATA_DIR")
}
