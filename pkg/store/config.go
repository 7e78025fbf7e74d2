package store

import (
	"fmt"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the store location and the persisted local preferences. The
// theme and locale live here, in the device-local config file, deliberately
// outside the record store.
type Config interface {
	BasePath() string
	LogPath() string
	LogLevel() string
	Theme() string
	Locale() string
	SetTheme(name string) error
	SetLocale(code string) error
}

// LoadConfig reads ~/.internlog.yaml, falling back to defaults when the file
// does not exist yet. INTERNLOG_* environment variables override.
func LoadConfig() (Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("store: resolve home dir: %w", err)
	}

	v := viper.New()
	v.SetDefault("path", filepath.Join(home, ".internlog", "logs"))
	v.SetDefault("theme", "")
	v.SetDefault("locale", "th")
	v.SetDefault("loglevel", "info")

	v.SetConfigName(".internlog")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	v.SetEnvPrefix("INTERNLOG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return &fileConfig{v: v, file: filepath.Join(home, ".internlog.yaml")}, nil
}

type fileConfig struct {
	v    *viper.Viper
	file string
}

func (c *fileConfig) BasePath() string {
	return c.v.GetString("path")
}

func (c *fileConfig) LogPath() string {
	return filepath.Join(filepath.Dir(c.BasePath()), "internlog.log")
}

func (c *fileConfig) LogLevel() string {
	return c.v.GetString("loglevel")
}

func (c *fileConfig) Theme() string {
	return c.v.GetString("theme")
}

func (c *fileConfig) Locale() string {
	return c.v.GetString("locale")
}

func (c *fileConfig) SetTheme(name string) error {
	c.v.Set("theme", name)
	return c.write()
}

func (c *fileConfig) SetLocale(code string) error {
	c.v.Set("locale", code)
	return c.write()
}

func (c *fileConfig) write() error {
	if err := c.v.WriteConfigAs(c.file); err != nil {
		return fmt.Errorf("store: write config: %w", err)
	}
	return nil
}
