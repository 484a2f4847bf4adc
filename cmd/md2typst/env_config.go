package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2typst/internal/config"
	"github.com/alnah/go-md2typst/internal/fonts"
	"github.com/alnah/go-md2typst/internal/logging"
	"github.com/alnah/go-md2typst/internal/update"
)

const envPrefix = "MD2TYPST_"

// envConfig holds configuration from environment variables, for CI jobs
// that prefer variables over a YAML file.
type envConfig struct {
	ConfigPath string        // MD2TYPST_CONFIG: config file name or path
	Style      string        // MD2TYPST_STYLE: style name or .typ path
	Timeout    time.Duration // MD2TYPST_TIMEOUT: per-document timeout
	Workers    int           // MD2TYPST_WORKERS: parallel workers

	LogLevel  logging.Level  // MD2TYPST_LOG_LEVEL: debug, info, warn, error
	LogFormat logging.Format // MD2TYPST_LOG_FORMAT: text or json
}

// knownEnvVars lists valid MD2TYPST_* variables, to flag typos.
var knownEnvVars = map[string]bool{
	"MD2TYPST_CONFIG":     true,
	"MD2TYPST_STYLE":      true,
	"MD2TYPST_TIMEOUT":    true,
	"MD2TYPST_WORKERS":    true,
	"MD2TYPST_LOG_LEVEL":  true,
	"MD2TYPST_LOG_FORMAT": true,
	"MD2TYPST_CONTAINER":  true,
	fonts.DirEnv:          true,
	update.OptOutEnv:      true,
}

// loadEnvConfig reads MD2TYPST_* variables. Malformed values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2TYPST_CONFIG"),
		Style:      os.Getenv("MD2TYPST_STYLE"),
		LogLevel:   logging.LevelWarn,
	}

	if timeout := os.Getenv("MD2TYPST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("MD2TYPST_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if level := os.Getenv("MD2TYPST_LOG_LEVEL"); level != "" {
		if l, err := logging.ParseLevel(level); err == nil {
			cfg.LogLevel = l
		}
	}
	if strings.EqualFold(os.Getenv("MD2TYPST_LOG_FORMAT"), "json") {
		cfg.LogFormat = logging.FormatJSON
	}

	return cfg
}

// warnUnknownEnvVars reports MD2TYPST_* variables nobody reads.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overlays environment values on cfg.
// Precedence: flags > environment > config file > defaults; flags are
// merged afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
