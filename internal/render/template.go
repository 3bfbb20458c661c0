package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	placeholderRE = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)
	conditionalRE = regexp.MustCompile(`(?s)\{%\s*if\s+(not\s+)?([a-zA-Z0-9_]+)\s*%\}(.*?)(?:\{%\s*else\s*%\}(.*?))?\{%\s*endif\s*%\}`)
)

// Fill раскрывает блоки {% if %} и подставляет {{ key }}. Вложенность не поддерживается.
func Fill(text string, values map[string]any) string {
	if !strings.Contains(text, "{") {
		return text
	}

	text = conditionalRE.ReplaceAllStringFunc(text, func(block string) string {
		m := conditionalRE.FindStringSubmatch(block)
		cond := truthy(values[m[2]])
		if m[1] != "" {
			cond = !cond
		}
		if cond {
			return m[3]
		}
		return m[4]
	})

	return placeholderRE.ReplaceAllStringFunc(text, func(token string) string {
		m := placeholderRE.FindStringSubmatch(token)
		v, ok := values[m[1]]
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprint(v)
	})
}

func hasMarkup(text string) bool {
	return strings.Contains(text, "{{") || strings.Contains(text, "{%")
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return strings.TrimSpace(t) != ""
	default:
		return true
	}
}
