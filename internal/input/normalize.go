package input

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TryParseJSONLine attempts to parse a raw input line as a JSON object.
// Returns nil when the line is not a JSON object; a malformed line is plain
// text, not an error.
func TryParseJSONLine(raw string) map[string]any {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil
	}
	return obj
}

// NormalizeToText renders a candidate introduction to one text line. When obj
// is a parsed JSON-line introduction, known fields (with Russian and English
// key aliases) are joined into a pipe-separated summary; otherwise the raw
// text is returned trimmed.
func NormalizeToText(raw string, obj map[string]any) string {
	if obj == nil {
		return strings.TrimSpace(raw)
	}

	pick := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := obj[k]; ok && v != nil {
				return strings.TrimSpace(fmt.Sprintf("%v", v))
			}
		}
		return ""
	}

	fields := []struct {
		label string
		value string
	}{
		{"Имя", pick("Имя", "имя", "name", "candidate_name")},
		{"Позиция", pick("Позиция", "позиция", "position", "role")},
		{"Грейд", pick("Грейд", "грейд", "grade", "level")},
		{"Опыт", pick("Опыт", "опыт", "experience", "background")},
	}

	var parts []string
	for _, f := range fields {
		if f.value != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.label, f.value))
		}
	}

	if len(parts) == 0 {
		return strings.TrimSpace(raw)
	}
	return strings.Join(parts, " | ")
}
