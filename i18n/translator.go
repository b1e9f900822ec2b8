package i18n

import (
	"sort"
	"strings"
)

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "min", "max" or "detail").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. It holds no
// mutable state and may be shared freely.
type dictTranslator struct{ lang string }

// Built-in translators.
var (
	English Translator = dictTranslator{lang: "en"}
	// Japanese falls back to English wording for codes it does not know.
	Japanese Translator = dictTranslator{lang: "ja"}
)

// ForLanguage returns the built-in Translator for lang ("en"/"ja").
// Anything else yields English.
func ForLanguage(lang string) Translator {
	if strings.EqualFold(lang, "ja") {
		return Japanese
	}
	return English
}

// Languages lists the languages ForLanguage understands.
func Languages() []string { return []string{"en", "ja"} }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.base(code)
	if msg == "" {
		msg = code
	}
	return msg + suffix(t.lang, data)
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unsupported_type":
			return "未対応の型です"
		case "empty":
			return "値が空です"
		case "invalid_format":
			return "書式が不正です"
		case "invalid_character":
			return "不正な文字が含まれています"
		case "overflow":
			return "値が範囲外です"
		case "invalid_date":
			return "存在しない日付です"
		case "invalid_time":
			return "存在しない時刻です"
		case "invalid_zone":
			return "タイムゾーンが不正です"
		}
	}
	switch code {
	case "unsupported_type":
		return "unsupported type"
	case "empty":
		return "empty value"
	case "invalid_format":
		return "invalid format"
	case "invalid_character":
		return "invalid character"
	case "overflow":
		return "value out of range"
	case "invalid_date":
		return "no such date"
	case "invalid_time":
		return "no such time"
	case "invalid_zone":
		return "invalid timezone"
	}
	return ""
}

// suffix renders data deterministically: range bounds first, then detail,
// then any remaining keys in sorted order.
func suffix(lang string, data map[string]string) string {
	if len(data) == 0 {
		return ""
	}
	b := &strings.Builder{}
	lo, hasLo := data["min"]
	hi, hasHi := data["max"]
	if hasLo || hasHi {
		b.WriteString(" [")
		if hasLo {
			b.WriteString(lo)
		}
		b.WriteString("..")
		if hasHi {
			b.WriteString(hi)
		}
		b.WriteString("]")
	}
	if d, ok := data["detail"]; ok && d != "" {
		if lang == "ja" {
			b.WriteString("（" + d + "）")
		} else {
			b.WriteString(": " + d)
		}
	}
	rest := make([]string, 0, len(data))
	for k := range data {
		if k != "min" && k != "max" && k != "detail" {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		b.WriteString(" " + k + "=" + data[k])
	}
	return b.String()
}
