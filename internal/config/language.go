package config

import "strings"

// Three-letter codes the model does not accept, mapped to the two-letter
// codes it does.
var iso639Alpha3 = map[string]string{
	"eng": "en",
	"zho": "zh",
	"chi": "zh",
	"jpn": "ja",
	"kor": "ko",
	"deu": "de",
	"ger": "de",
	"fra": "fr",
	"fre": "fr",
	"spa": "es",
	"por": "pt",
	"ita": "it",
	"rus": "ru",
	"nld": "nl",
	"dut": "nl",
	"hin": "hi",
}

// NormalizeLanguage maps a user-supplied language to the code passed to the
// model. "auto" and the empty string mean detection and return "".
// Region subtags are dropped, so "en-US" becomes "en".
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "auto" {
		return ""
	}
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if two, ok := iso639Alpha3[code]; ok {
		return two
	}
	return code
}
