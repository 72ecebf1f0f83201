// Package config loads deckgfx settings from flags, DECKGFX_* environment variables
// and an optional .deckgfx.toml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rook-computer/deckgfx/internal/graphics"
)

const (
	KeyListen      = "listen"
	KeyDev         = "dev"
	KeyDB          = "db"
	KeyMaxButtons  = "max-buttons"
	KeyTopbarDelay = "topbar-delay"
	KeyFB          = "fb"
	KeyFBDevice    = "fb-device"
	KeyFBPage      = "fb-page"
	KeyFBColumns   = "fb-columns"
)

const (
	EnvPrefix = "deckgfx"
	FileName  = ".deckgfx"
)

type Config struct {
	Listen      string
	Dev         bool
	DB          string
	MaxButtons  int
	TopbarDelay time.Duration
	FB          bool
	FBDevice    string
	FBPage      int
	FBColumns   int
}

// New returns a viper instance with the deckgfx defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyListen, ":8080")
	v.SetDefault(KeyDev, false)
	v.SetDefault(KeyDB, "deckgfx.db")
	v.SetDefault(KeyMaxButtons, graphics.DefaultMaxButtons)
	v.SetDefault(KeyTopbarDelay, graphics.DefaultTopbarDelay)
	v.SetDefault(KeyFB, false)
	v.SetDefault(KeyFBDevice, "/dev/fb0")
	v.SetDefault(KeyFBPage, 1)
	v.SetDefault(KeyFBColumns, 8)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags lets explicitly set flags win over the environment and the config file.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

// Load reads cfgFile, or .deckgfx.toml from $HOME or the working directory when cfgFile
// is empty, and returns the resulting settings. A missing default file is not an error.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("toml")
		v.SetConfigName(FileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func FromViper(v *viper.Viper) Config {
	return Config{
		Listen:      v.GetString(KeyListen),
		Dev:         v.GetBool(KeyDev),
		DB:          v.GetString(KeyDB),
		MaxButtons:  v.GetInt(KeyMaxButtons),
		TopbarDelay: v.GetDuration(KeyTopbarDelay),
		FB:          v.GetBool(KeyFB),
		FBDevice:    v.GetString(KeyFBDevice),
		FBPage:      v.GetInt(KeyFBPage),
		FBColumns:   v.GetInt(KeyFBColumns),
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.MaxButtons < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyMaxButtons, c.MaxButtons))
	}
	if c.TopbarDelay < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %s", KeyTopbarDelay, c.TopbarDelay))
	}
	if c.FBPage < 1 || c.FBPage > graphics.MaxPages {
		errs = append(errs, fmt.Errorf("%s must be 1-%d, got %d", KeyFBPage, graphics.MaxPages, c.FBPage))
	}
	if c.FBColumns < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyFBColumns, c.FBColumns))
	}
	if c.DB == "" {
		errs = append(errs, fmt.Errorf("%s must be set", KeyDB))
	}
	return errors.Join(errs...)
}

// GraphicsOptions maps the settings onto the renderer options.
func (c Config) GraphicsOptions() graphics.Options {
	return graphics.Options{MaxButtons: c.MaxButtons, TopbarDelay: c.TopbarDelay}
}
