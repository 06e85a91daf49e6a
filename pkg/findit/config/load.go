package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/findit-cli/findit/pkg/findit/evaluator"
)

// Load reads .finditrc.yaml with environment-variable interpolation. If
// configPath is empty, it searches the default locations; a missing
// config file is not an error — it just means "use built-in defaults".
func Load(configPath string, getenv func(string) string) (*Config, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyLocale sets the evaluator's package-level date-formatting locale
// from this config's locale field (empty means the built-in default).
func (c *Config) ApplyLocale() {
	evaluator.Locale = LocaleFromString(c.Locale)
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > FINDITRC env var > ./.finditrc.yaml >
// ~/.config/findit/finditrc.yaml.
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("FINDITRC"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("FINDITRC file not found: %s", envPath)
		}
		return envPath, nil
	}

	if _, err := os.Stat(".finditrc.yaml"); err == nil {
		return ".finditrc.yaml", nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".config", "findit", "finditrc.yaml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no config file found")
}

// envPattern matches ${VAR} or ${VAR:-default}.
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with
// environment values, following the teacher's server/config.interpolateEnv
// idiom exactly.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		varName := string(parts[1])
		value := getenv(varName)
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}
