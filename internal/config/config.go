// Package config loads docmark settings from a config file, DOCMARK_*
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/docmark/extract"
	"github.com/tsawler/docmark/logging"
)

// Setting keys.
const (
	KeyOCREnabled    = "ocr.enabled"
	KeyOCRLanguage   = "ocr.language"
	KeyOCRDPI        = "ocr.dpi"
	KeyMinTextLength = "extract.min_text_length"
	KeyContents      = "markdown.contents"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
)

// EnvPrefix prefixes every environment variable, e.g. DOCMARK_OCR_DPI.
const EnvPrefix = "DOCMARK"

// Name is the config file name searched for without an explicit --config.
const Name = "docmark"

// Config is the resolved configuration.
type Config struct {
	OCR      OCR
	Extract  Extract
	Markdown Markdown
	Log      logging.Config
}

// OCR configures text recognition.
type OCR struct {
	Enabled  bool
	Language string // Tesseract language(s), "+" separated
	DPI      float64
}

// Extract configures unit extraction.
type Extract struct {
	MinTextLength int
}

// Markdown configures the output document.
type Markdown struct {
	Contents bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OCR:      OCR{Enabled: true, Language: "eng", DPI: extract.DefaultDPI},
		Extract:  Extract{MinTextLength: extract.DefaultMinTextLength},
		Markdown: Markdown{Contents: false},
		Log:      logging.Config{Level: "warn", Format: "console"},
	}
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyOCREnabled, d.OCR.Enabled)
	v.SetDefault(KeyOCRLanguage, d.OCR.Language)
	v.SetDefault(KeyOCRDPI, d.OCR.DPI)
	v.SetDefault(KeyMinTextLength, d.Extract.MinTextLength)
	v.SetDefault(KeyContents, d.Markdown.Contents)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
}

// New returns a viper instance with defaults and environment binding. When
// file is empty it looks for docmark.yaml in the working directory and in
// ~/.config/docmark; a missing file there is not an error. It returns the
// config file used, if any.
func New(file string) (*viper.Viper, string, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return v, "", nil
		}
		return nil, "", fmt.Errorf("read config: %w", err)
	}
	return v, v.ConfigFileUsed(), nil
}

// BindFlags binds the flags that exist in fs onto their keys. Flags are
// looked up by name: key -> flag.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, names map[string]string) error {
	for key, name := range names {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load resolves the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		OCR: OCR{
			Enabled:  v.GetBool(KeyOCREnabled),
			Language: strings.TrimSpace(v.GetString(KeyOCRLanguage)),
			DPI:      v.GetFloat64(KeyOCRDPI),
		},
		Extract: Extract{
			MinTextLength: v.GetInt(KeyMinTextLength),
		},
		Markdown: Markdown{
			Contents: v.GetBool(KeyContents),
		},
		Log: logging.Config{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.OCR.DPI <= 0 {
		return fmt.Errorf("%s must be positive, got %v", KeyOCRDPI, c.OCR.DPI)
	}
	if c.OCR.Enabled && c.OCR.Language == "" {
		return fmt.Errorf("%s must not be empty", KeyOCRLanguage)
	}
	if c.Extract.MinTextLength < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeyMinTextLength, c.Extract.MinTextLength)
	}
	if c.Log.Level != "" && !slices.Contains(logging.Levels, c.Log.Level) {
		return fmt.Errorf("%s: unknown level %q (want one of %s)", KeyLogLevel, c.Log.Level, strings.Join(logging.Levels, ", "))
	}
	if c.Log.Format != "" && !slices.Contains(logging.Formats, c.Log.Format) {
		return fmt.Errorf("%s: unknown format %q (want one of %s)", KeyLogFormat, c.Log.Format, strings.Join(logging.Formats, ", "))
	}
	return nil
}
