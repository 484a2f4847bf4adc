// Package config loads md2typst configuration files. A config supplies
// defaults for the convert command; flags always override it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/alnah/go-md2typst/internal/assets"
	"github.com/alnah/go-md2typst/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when --config is not given.
const DefaultName = "md2typst"

// AppDirName is the directory under os.UserConfigDir holding named configs.
const AppDirName = "go-md2typst"

// Field limits.
const (
	MaxTitleLength    = 200
	MaxNameLength     = 100
	MaxLangLength     = 35 // BCP 47 practical maximum
	MaxPathLength     = 4096
	MaxWorkers        = 32
	MaxFontPaths      = 16
	MaxLanguageAlias  = 64
	DefaultTimeoutStr = "30s"
)

// Config holds the defaults applied to every conversion.
type Config struct {
	Style    string         `yaml:"style"`    // built-in or custom style name
	Template string         `yaml:"template"` // path to a .typ file defining article()
	Document DocumentConfig `yaml:"document"`
	Output   OutputConfig   `yaml:"output"`
	Assets   AssetsConfig   `yaml:"assets"`
	Workers  int            `yaml:"workers"` // 0 = auto
	Timeout  string         `yaml:"timeout"` // Go duration, e.g. "45s"
	Fonts    FontsConfig    `yaml:"fonts"`
	Code     CodeConfig     `yaml:"code"`
}

// DocumentConfig provides metadata used when neither flags nor front matter set it.
type DocumentConfig struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Lang   string `yaml:"lang"`
	TOC    *bool  `yaml:"toc"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	KeepTypst  bool   `yaml:"keepTypst"`  // also write the .typ source
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded styles only
}

// FontsConfig lists extra font directories passed to the compiler.
type FontsConfig struct {
	Paths []string `yaml:"paths"`
}

// CodeConfig configures code block handling.
type CodeConfig struct {
	// Languages maps fence info strings to the language name emitted,
	// e.g. {"golang": "go"}. Consulted before the built-in lexer aliases.
	Languages map[string]string `yaml:"languages"`
}

// TimeoutDuration returns the parsed timeout, or zero when unset.
// Validate guarantees the value parses.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks values a config file may get wrong.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Style != "" {
		if err := assets.ValidateAssetName(c.Style); err != nil {
			return fmt.Errorf("%w: style: %v", ErrInvalidField, err)
		}
	}
	if err := validateFieldLength("template", c.Template, MaxPathLength); err != nil {
		return err
	}
	if c.Template != "" && !strings.HasSuffix(strings.ToLower(c.Template), assets.StyleExt) {
		return fmt.Errorf("%w: template: %q must be a %s file", ErrInvalidField, c.Template, assets.StyleExt)
	}

	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.author", c.Document.Author, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.lang", c.Document.Lang, MaxLangLength); err != nil {
		return err
	}
	if c.Document.Lang != "" {
		if _, err := language.Parse(c.Document.Lang); err != nil {
			return fmt.Errorf("%w: document.lang: %q is not a language tag", ErrInvalidField, c.Document.Lang)
		}
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidField, MaxWorkers, c.Workers)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout: %v", ErrInvalidField, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout: must be positive, got %s", ErrInvalidField, c.Timeout)
		}
	}

	if len(c.Fonts.Paths) > MaxFontPaths {
		return fmt.Errorf("%w: fonts.paths: at most %d entries, got %d", ErrInvalidField, MaxFontPaths, len(c.Fonts.Paths))
	}
	for i, p := range c.Fonts.Paths {
		if err := validateFieldLength(fmt.Sprintf("fonts.paths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	for from, to := range c.Code.Languages {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("%w: code.languages: empty alias %q -> %q", ErrInvalidField, from, to)
		}
		if err := validateFieldLength("code.languages", from, MaxLanguageAlias); err != nil {
			return err
		}
		if err := validateFieldLength("code.languages", to, MaxLanguageAlias); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Style:   assets.DefaultStyle,
		Timeout: DefaultTimeoutStr,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Unset fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yamlutil.DecodeStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrConfigParse, configPath, yamlutil.Describe(err))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files resolveConfigPath tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name: the current
// directory first, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
