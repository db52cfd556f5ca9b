package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config is the durable configuration of one sync installation, merged
// over defaults from the config file and environment.
type Config struct {
	AccessToken string `mapstructure:"access_token"`
	APIBaseURL  string `mapstructure:"api_base_url"`

	VaultDir   string `mapstructure:"vault_dir"`
	SyncFolder string `mapstructure:"sync_folder"`

	AutoSync AutoSyncConfig `mapstructure:"auto_sync"`
	Images   ImagesConfig   `mapstructure:"images"`
	Index    IndexConfig    `mapstructure:"index"`

	StateFile string `mapstructure:"state_file"`
}

type AutoSyncConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type ImagesConfig struct {
	Download bool   `mapstructure:"download"`
	Folder   string `mapstructure:"folder"`
}

type IndexConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from configFile, or searches the working
// directory and ~/.config/pinbox-to-markdown when empty. The access
// token may come from the PINBOX_TOKEN environment variable instead of
// the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pinbox-to-markdown")
	}

	v.SetDefault("api_base_url", "https://withpinbox.com/api")
	v.SetDefault("vault_dir", ".")
	v.SetDefault("sync_folder", "Pinbox")
	v.SetDefault("auto_sync.enabled", false)
	v.SetDefault("auto_sync.interval", 30*time.Minute)
	v.SetDefault("images.download", false)
	v.SetDefault("images.folder", "Pinbox/assets")
	v.SetDefault("index.enabled", false)
	v.SetDefault("index.path", "Pinbox/index.md")
	v.SetDefault("state_file", ".pinbox-sync.json")

	if err := v.BindEnv("access_token", "PINBOX_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind PINBOX_TOKEN environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, the token can come from the
		// environment. Anything else (unreadable, malformed) is not.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
