package config

import (
	"strings"

	"github.com/goodsign/monday"
)

// localeMap mirrors the teacher's locale-string-to-monday.Locale table
// (pkg/parsley/evaluator/eval_locale.go's getMondayLocale), trimmed to the
// locales findit ships date-literal/format support for.
var localeMap = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"de_de": monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_fr": monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"es_es": monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"it_it": monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_pt": monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"nl_nl": monday.LocaleNlNL,
	"ru":    monday.LocaleRuRU,
	"ru_ru": monday.LocaleRuRU,
	"ja":    monday.LocaleJaJP,
	"ja_jp": monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_cn": monday.LocaleZhCN,
	"ko":    monday.LocaleKoKR,
	"ko_kr": monday.LocaleKoKR,
}

// LocaleFromString maps a config/CLI locale string (e.g. "en_GB", "fr-FR")
// to a monday.Locale, defaulting to US English for anything unrecognized
// rather than erroring — a bad locale value degrades date formatting, it
// never aborts a run.
func LocaleFromString(s string) monday.Locale {
	normalized := strings.ToLower(strings.ReplaceAll(s, "-", "_"))
	if loc, ok := localeMap[normalized]; ok {
		return loc
	}
	if lang, _, found := strings.Cut(normalized, "_"); found {
		if loc, ok := localeMap[lang]; ok {
			return loc
		}
	}
	return monday.LocaleEnUS
}
