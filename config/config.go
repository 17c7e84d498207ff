// Package config loads mdconvert settings from mdconvert.yaml, the
// environment (MDCONVERT_*) and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	Format    string         `mapstructure:"format"`
	OutputDir string         `mapstructure:"output_dir"`
	Recursive bool           `mapstructure:"recursive"`
	Markdown  MarkdownConfig `mapstructure:"markdown"`
	Header    HeaderConfig   `mapstructure:"header"`
	DOCX      DOCXConfig     `mapstructure:"docx"`
	PDF       PDFConfig      `mapstructure:"pdf"`
	HTTP      HTTPConfig     `mapstructure:"http"`
}

type MarkdownConfig struct {
	IndentUnit int `mapstructure:"indent_unit"` // columns per list level
	TabWidth   int `mapstructure:"tab_width"`   // 0 = one indent unit
}

type HeaderConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	SourceNotice bool `mapstructure:"source_notice"`
	Metadata     bool `mapstructure:"metadata"`
	Warnings     bool `mapstructure:"warnings"`
}

type DOCXConfig struct {
	Font     string  `mapstructure:"font"`
	CodeFont string  `mapstructure:"code_font"`
	FontSize float64 `mapstructure:"font_size"` // points
}

type PDFConfig struct {
	PageSize    string `mapstructure:"page_size"`
	Orientation string `mapstructure:"orientation"` // "P" or "L"
}

type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Formats lists the accepted output formats.
var Formats = []string{"docx", "pdf", "json", "text"}

const (
	configName = "mdconvert"
	envPrefix  = "MDCONVERT"
)

// Load reads configuration. A non-empty path must name an existing file;
// otherwise mdconvert.yaml is looked up in the config dir and the working
// directory and may be absent. Flags in fs that were set on the command
// line override both.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if dir, err := GetConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "docx")
	v.SetDefault("output_dir", "")
	v.SetDefault("recursive", false)
	v.SetDefault("markdown.indent_unit", 2)
	v.SetDefault("markdown.tab_width", 0)
	v.SetDefault("header.enabled", true)
	v.SetDefault("header.source_notice", true)
	v.SetDefault("header.metadata", true)
	v.SetDefault("header.warnings", true)
	v.SetDefault("docx.font", "Calibri")
	v.SetDefault("docx.code_font", "Consolas")
	v.SetDefault("docx.font_size", 11.0)
	v.SetDefault("pdf.page_size", "A4")
	v.SetDefault("pdf.orientation", "P")
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user_agent", "mdconvert/1.0 (https://github.com/gaurav-prasanna/mdconvert)")
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"output_dir": "output_dir",
	"recursive":  "recursive",
	"indent":     "markdown.indent_unit",
	"tab_width":  "markdown.tab_width",
	"timeout":    "http.timeout",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	if f := fs.Lookup("no-header"); f != nil && f.Changed {
		v.Set("header.enabled", false)
	}
	return nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if !IsFormat(c.Format) {
		return fmt.Errorf("unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.Markdown.IndentUnit < 1 {
		return fmt.Errorf("markdown.indent_unit must be at least 1, got %d", c.Markdown.IndentUnit)
	}
	if c.Markdown.TabWidth < 0 {
		return fmt.Errorf("markdown.tab_width must not be negative, got %d", c.Markdown.TabWidth)
	}
	if c.DOCX.FontSize <= 0 {
		return fmt.Errorf("docx.font_size must be positive, got %g", c.DOCX.FontSize)
	}
	switch strings.ToUpper(c.PDF.Orientation) {
	case "P", "L":
	default:
		return fmt.Errorf("pdf.orientation must be P or L, got %q", c.PDF.Orientation)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	return nil
}

// IsFormat reports whether name is an accepted output format.
func IsFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// GetConfigDir returns $XDG_CONFIG_HOME/mdconvert, or ~/.config/mdconvert.
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "mdconvert"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "mdconvert"), nil
}
