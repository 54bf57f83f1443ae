package translator

// Language is a target language offered by the language selector.
type Language struct {
	Code string
	Name string
}

// Languages are the supported auto-translate targets, in menu order.
var Languages = []Language{
	{"zh", "中文"},
	{"en", "English"},
	{"ja", "日本語"},
	{"ko", "한국어"},
	{"fr", "Français"},
	{"de", "Deutsch"},
	{"es", "Español"},
	{"it", "Italiano"},
	{"pt", "Português"},
	{"ru", "Русский"},
	{"ar", "العربية"},
	{"hi", "हिन्दी"},
	{"th", "ไทย"},
	{"vi", "Tiếng Việt"},
}

// IsSupported reports whether code is one of Languages.
func IsSupported(code string) bool {
	_, ok := LanguageName(code)
	return ok
}

// LanguageName returns the display name for code.
func LanguageName(code string) (string, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l.Name, true
		}
	}
	return "", false
}

// Codes returns the supported language codes in menu order.
func Codes() []string {
	out := make([]string, len(Languages))
	for i, l := range Languages {
		out[i] = l.Code
	}
	return out
}
