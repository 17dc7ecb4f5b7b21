package i18n

import "fmt"

// Translator retrieves localized messages for Issue codes.
// data provides structured parameters to embed in the message (for example,
// "min", "max", "property", "pattern").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	get := func(k string) string {
		if data == nil {
			return ""
		}
		return data[k]
	}
	if t.lang == "ja" {
		switch code {
		case "invalid_type":
			if exp := get("expected"); exp != "" {
				return "型が不正です (expected: " + exp + ")"
			}
			return "型が不正です"
		case "required":
			if p := get("property"); p != "" {
				return fmt.Sprintf("必須プロパティ %q が不足しています", p)
			}
			return "必須プロパティが不足しています"
		case "unknown_key":
			if p := get("property"); p != "" {
				return fmt.Sprintf("未知のプロパティ %q です", p)
			}
			return "未知のキーです"
		case "too_short":
			return fmt.Sprintf("%s 文字以上でなければなりません", get("min"))
		case "too_long":
			return fmt.Sprintf("%s 文字以下でなければなりません", get("max"))
		case "too_small":
			return fmt.Sprintf("%s 以上でなければなりません", get("min"))
		case "too_big":
			return fmt.Sprintf("%s 以下でなければなりません", get("max"))
		case "parse_error":
			return "解析エラー"
		}
		// fall through to English for codes without a Japanese entry yet
	}
	switch code {
	case "invalid_type":
		if exp := get("expected"); exp != "" {
			return "must be " + exp
		}
		return "invalid type"
	case "required":
		if p := get("property"); p != "" {
			return fmt.Sprintf("missing required property %q", p)
		}
		return "missing required property"
	case "unknown_key":
		if p := get("property"); p != "" {
			return fmt.Sprintf("unknown property %q", p)
		}
		return "unknown key"
	case "too_short":
		if get("kind") == "items" {
			return fmt.Sprintf("must have at least %s items", get("min"))
		}
		return fmt.Sprintf("must be at least %s characters", get("min"))
	case "too_long":
		if get("kind") == "items" {
			return fmt.Sprintf("must have at most %s items", get("max"))
		}
		return fmt.Sprintf("must be at most %s characters", get("max"))
	case "too_small":
		if get("exclusive") == "true" {
			return fmt.Sprintf("must be greater than %s", get("min"))
		}
		return fmt.Sprintf("must be at least %s", get("min"))
	case "too_big":
		if get("exclusive") == "true" {
			return fmt.Sprintf("must be less than %s", get("max"))
		}
		return fmt.Sprintf("must be at most %s", get("max"))
	case "not_multiple_of":
		return fmt.Sprintf("must be a multiple of %s", get("factor"))
	case "pattern":
		return fmt.Sprintf("must match pattern %q", get("pattern"))
	case "invalid_format":
		return fmt.Sprintf("must match format %q", get("format"))
	case "invalid_enum":
		if allowed := get("allowed"); allowed != "" {
			return "must be one of: " + allowed
		}
		return "must be one of the allowed values"
	case "invalid_const":
		return "must equal the constant value"
	case "uniqueness":
		return "items must be unique"
	case "contains":
		return "must contain at least one matching item"
	case "property_names":
		return fmt.Sprintf("property name %q is invalid", get("property"))
	case "additional_items":
		return "additional items not allowed"
	case "any_of":
		return "must match at least one schema in anyOf"
	case "one_of":
		return "must match exactly one schema in oneOf"
	case "not":
		return "value must not match schema"
	case "unsupported_type":
		return fmt.Sprintf("unsupported type %q", get("type"))
	case "merge_conflict":
		return "no valid type satisfies both schemas"
	case "parse_error":
		if d := get("detail"); d != "" {
			return "parse error: " + d
		}
		return "parse error"
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
