// Package i18n holds the message catalog for descriptor issue codes.
package i18n

import "sync/atomic"

// Translator retrieves localized messages for descriptor issue codes.
// data carries optional details such as "expected".
type Translator interface {
	Message(code string, data map[string]string) string
}

type catalog struct {
	messages      map[string]string
	expectedLabel string
}

var catalogs = map[string]catalog{
	"en": {
		expectedLabel: "expected",
		messages: map[string]string{
			"invalid_type":    "invalid type",
			"required":        "required property missing",
			"invalid_literal": "value does not match literal",
			"too_short":       "too few elements",
			"too_long":        "too many elements",
			"never":           "no value is accepted",
			"no_match":        "no alternative matched",
			"constraint":      "constraint failed",
			"not_json":        "value is not representable as JSON",
		},
	},
	"ja": {
		expectedLabel: "期待値",
		messages: map[string]string{
			"invalid_type":    "型が不正です",
			"required":        "必須プロパティが不足しています",
			"invalid_literal": "リテラル値と一致しません",
			"too_short":       "要素が少なすぎます",
			"too_long":        "要素が多すぎます",
			"never":           "どの値も受け付けません",
			"no_match":        "いずれの候補にも一致しません",
			"constraint":      "制約を満たしません",
			"not_json":        "JSONで表現できない値です",
		},
	},
}

// Message implements Translator. Unknown codes are returned as is.
func (c catalog) Message(code string, data map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return code
	}
	if e := data["expected"]; e != "" {
		msg += " (" + c.expectedLabel + ": " + e + ")"
	}
	return msg
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { SetTranslator(nil) }

// SetLanguage selects a built-in catalog ("en" or "ja"). Other values select
// "en".
func SetLanguage(lang string) {
	c, ok := catalogs[lang]
	if !ok {
		c = catalogs["en"]
	}
	current.Store(&holder{tr: c})
}

// SetTranslator installs tr. A nil tr restores the English catalog.
// It is safe to call while issues are being produced on other goroutines.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = catalogs["en"]
	}
	current.Store(&holder{tr: tr})
}

// T returns the message for code from the installed Translator.
func T(code string, data map[string]string) string {
	return current.Load().tr.Message(code, data)
}
