package config

import (
	"testing"

	"github.com/goodsign/monday"
)

func TestLocaleFromString(t *testing.T) {
	cases := []struct {
		in   string
		want monday.Locale
	}{
		{"en_US", monday.LocaleEnUS},
		{"en-GB", monday.LocaleEnGB},
		{"fr_FR", monday.LocaleFrFR},
		{"de", monday.LocaleDeDE},
		{"zz_ZZ", monday.LocaleEnUS}, // unknown falls back to US English
		{"", monday.LocaleEnUS},
	}
	for _, c := range cases {
		if got := LocaleFromString(c.in); got != c.want {
			t.Errorf("LocaleFromString(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
