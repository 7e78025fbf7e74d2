// Package i18n provides the display strings for the two supported locales,
// Thai (the default) and English.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang is the startup locale when none is configured.
const DefaultLang = "th"

var supported = []string{"th", "en"}

// Supported lists the locale codes shipped with the binary.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// Translator resolves message keys for one locale. Missing keys fall back to
// the key itself so a forgotten translation shows up instead of breaking the
// view.
type Translator struct {
	lang      string
	localizer *goi18n.Localizer
}

// New loads the embedded message files and returns a translator for lang.
// Unknown codes fall back to the default locale.
func New(lang string) (*Translator, error) {
	if !known(lang) {
		lang = DefaultLang
	}

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, code := range supported {
		path := fmt.Sprintf("locales/active.%s.json", code)
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", path, err)
		}
	}

	return &Translator{
		lang:      lang,
		localizer: goi18n.NewLocalizer(bundle, lang, "en"),
	}, nil
}

// T translates key, returning the key itself when no message exists.
func (t *Translator) T(key string) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return key
	}
	return msg
}

// Lang reports the active locale code.
func (t *Translator) Lang() string {
	return t.lang
}

// Toggled returns the other locale code, for the language toggle.
func (t *Translator) Toggled() string {
	if t.lang == "th" {
		return "en"
	}
	return "th"
}

func known(lang string) bool {
	for _, code := range supported {
		if code == lang {
			return true
		}
	}
	return false
}
