// Package i18n provides internationalization support for the wyvern compiler.
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Language represents a supported language
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

var (
	currentLang Language
	once        sync.Once
)

// supported is ordered like the Language constants; index 0 is the fallback.
var (
	supported = []Language{LangEnglish, LangChinese}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Chinese})
)

// Init initializes the i18n system by detecting the system language.
// This is called automatically on first use, but can be called explicitly.
func Init() {
	once.Do(func() {
		if currentLang == "" {
			currentLang = detectLanguage()
		}
	})
}

// SetLanguage sets the current language manually.
func SetLanguage(lang Language) {
	once.Do(func() {})
	currentLang = lang
}

// GetLanguage returns the current language.
func GetLanguage() Language {
	Init()
	return currentLang
}

// T translates a message key to the current language.
// If the key is not found, returns the key itself.
// Supports format arguments like fmt.Sprintf.
func T(key string, args ...any) string {
	Init()

	var messages map[string]string
	switch currentLang {
	case LangChinese:
		messages = zhMessages
	default:
		messages = enMessages
	}

	template, ok := messages[key]
	if !ok {
		// Fallback to English
		template, ok = enMessages[key]
		if !ok {
			return key
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(template, args...)
	}
	return template
}

// detectLanguage detects the language from the environment.
func detectLanguage() Language {
	for _, envVar := range []string{"WYVERN_LANG", "LC_ALL", "LANG", "LANGUAGE"} {
		if lang := os.Getenv(envVar); lang != "" {
			if detected := parseLanguageCode(lang); detected != "" {
				return detected
			}
		}
	}
	return LangEnglish
}

// parseLanguageCode maps a locale string such as "zh_CN.UTF-8", "zh-Hans"
// or "en" to a supported language. Unknown locales yield "".
func parseLanguageCode(code string) Language {
	// LANGUAGE may hold a colon separated preference list
	code, _, _ = strings.Cut(code, ":")
	code, _, _ = strings.Cut(code, ".")
	code, _, _ = strings.Cut(code, "@")
	code = strings.ReplaceAll(code, "_", "-")

	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return ""
	}
	return supported[index]
}
