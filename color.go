package presenter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var DefaultCodeBackground = RGB{30, 30, 30}

// ParseColor parses RRGGBB or #RRGGBB. An empty string gives nil; anything
// malformed is logged and also gives nil.
func ParseColor(s string) *RGB {
	if s == "" {
		return nil
	}
	hex := strings.TrimLeft(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		logger.WithField("color", s).Warn("invalid color format, expected RRGGBB")
		return nil
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		logger.WithFields(logrus.Fields{"color": s, "error": err}).Warn("invalid hex color")
		return nil
	}
	return &RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// ThemeConfig holds the theme colours as configured, in hex.
type ThemeConfig struct {
	ContentBackground string `yaml:"content_background" mapstructure:"content_background"`
	ContentFont       string `yaml:"content_font" mapstructure:"content_font"`
	TitleBackground   string `yaml:"title_background" mapstructure:"title_background"`
	TitleFont         string `yaml:"title_font" mapstructure:"title_font"`
	CodeBackground    string `yaml:"code_background" mapstructure:"code_background"`
}

// Merge returns c with every empty field taken from fallback.
func (c ThemeConfig) Merge(fallback ThemeConfig) ThemeConfig {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return ThemeConfig{
		ContentBackground: pick(c.ContentBackground, fallback.ContentBackground),
		ContentFont:       pick(c.ContentFont, fallback.ContentFont),
		TitleBackground:   pick(c.TitleBackground, fallback.TitleBackground),
		TitleFont:         pick(c.TitleFont, fallback.TitleFont),
		CodeBackground:    pick(c.CodeBackground, fallback.CodeBackground),
	}
}

// Theme is a resolved ThemeConfig. Nil fields mean "use the canvas default".
type Theme struct {
	ContentBackground *RGB
	ContentFont       *RGB
	TitleBackground   *RGB
	TitleFont         *RGB
	CodeBackground    *RGB
}

func (c ThemeConfig) Resolve() Theme {
	return Theme{
		ContentBackground: ParseColor(c.ContentBackground),
		ContentFont:       ParseColor(c.ContentFont),
		TitleBackground:   ParseColor(c.TitleBackground),
		TitleFont:         ParseColor(c.TitleFont),
		CodeBackground:    ParseColor(c.CodeBackground),
	}
}

// Background is the page colour for a slide.
func (t Theme) Background(titleSlide bool) *RGB {
	if titleSlide {
		return t.TitleBackground
	}
	return t.ContentBackground
}

// Font is the text colour for a slide.
func (t Theme) Font(titleSlide bool) *RGB {
	if titleSlide {
		return t.TitleFont
	}
	return t.ContentFont
}

func (t Theme) CodeFill() RGB {
	if t.CodeBackground != nil {
		return *t.CodeBackground
	}
	return DefaultCodeBackground
}
