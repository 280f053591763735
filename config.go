package presenter

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings read from presenter.yaml and PRESENTER_*
// environment variables. Front matter in a document overrides them.
type Config struct {
	Separator  string      `mapstructure:"separator"`
	Background string      `mapstructure:"background"`
	RevealURL  string      `mapstructure:"reveal_url"`
	Addr       string      `mapstructure:"addr"`
	Theme      ThemeConfig `mapstructure:"theme"`
}

// LoadConfig reads the config file at path. With an empty path
// presenter.yaml is looked up in the working directory and may be absent.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("separator", DefaultSeparator)
	v.SetDefault("background", "")
	v.SetDefault("reveal_url", DefaultRevealURL)
	v.SetDefault("addr", ":8080")
	for _, key := range []string{"content_background", "content_font", "title_background", "title_font", "code_background"} {
		v.SetDefault("theme."+key, "")
	}

	v.SetEnvPrefix("presenter")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("presenter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		logger.Debug("no config file found, using defaults")
	} else {
		logger.WithField("file", v.ConfigFileUsed()).Debug("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the presentation fields a document inherits when its
// front matter does not set them.
func (c Config) Defaults() Presentation {
	return Presentation{
		Separator:  c.Separator,
		Background: c.Background,
		Theme:      c.Theme,
	}
}

func (c Config) HTMLOptions() HTMLOptions {
	return HTMLOptions{RevealURL: c.RevealURL}
}
