package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-sitedata/internal/config"
)

const envPrefix = "SITEDATA_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // SITEDATA_CONFIG: config file name or path
	Root       string // SITEDATA_ROOT: site root directory
	LogLevel   string // SITEDATA_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid SITEDATA_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SITEDATA_CONFIG":    true,
	"SITEDATA_ROOT":      true,
	"SITEDATA_LOG_LEVEL": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("SITEDATA_CONFIG"),
		Root:       os.Getenv("SITEDATA_ROOT"),
		LogLevel:   os.Getenv("SITEDATA_LOG_LEVEL"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized SITEDATA_* variables.
// Helps catch typos like SITEDATA_ROOTDIR instead of SITEDATA_ROOT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// CLI flags are applied afterwards by mergeFlags, giving:
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.Root = env.Root
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
}
