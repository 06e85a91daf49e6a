package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.InterpolationStart != "`" || cfg.InterpolationEnd != "`" {
		t.Errorf("expected default delimiters to be backticks, got %q/%q", cfg.InterpolationStart, cfg.InterpolationEnd)
	}
	if cfg.Locale != "en_US" {
		t.Errorf("expected default locale en_US, got %q", cfg.Locale)
	}
	if cfg.Where != "" || cfg.Display != "" || cfg.OrderBy != "" {
		t.Error("expected where/display/order-by to be unset by default")
	}
}
