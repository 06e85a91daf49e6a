// Package config loads optional CLI defaults from a .finditrc.yaml file,
// for flags that are tedious to repeat on every invocation (SPEC_FULL.md
// §1.3). CLI flags always override whatever this package loads.
package config

// Config holds defaults for findit's CLI flags. Every field is optional;
// the zero value means "not set, fall back to the CLI's own default".
type Config struct {
	Where              string `yaml:"where"`
	Display            string `yaml:"display"`
	OrderBy            string `yaml:"order-by"`
	MaxDepth           int    `yaml:"max-depth"`
	MinDepth           int    `yaml:"min-depth"`
	Limit              int    `yaml:"limit"`
	DebugLog           string `yaml:"debug-log"`
	InterpolationStart string `yaml:"interpolation-start"`
	InterpolationEnd   string `yaml:"interpolation-end"`
	Locale             string `yaml:"locale"`
}

// Defaults returns a Config with findit's built-in defaults.
func Defaults() *Config {
	return &Config{
		InterpolationStart: "`",
		InterpolationEnd:   "`",
		Locale:             "en_US",
	}
}
