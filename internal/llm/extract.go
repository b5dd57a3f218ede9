package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject returns the first balanced JSON object embedded in text.
// Providers without native structured output tend to wrap their JSON in
// prose or markdown fences; the scan is string- and escape-aware so braces
// inside string values do not terminate the object early.
// Returns *ErrInvalidResponse when no balanced object is found.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(text),
			Err:     fmt.Errorf("no JSON object in response text"),
		}
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return json.RawMessage(text[start : i+1]), nil
			}
		}
	}

	return nil, &ErrInvalidResponse{
		Content: json.RawMessage(text),
		Err:     fmt.Errorf("unbalanced JSON object in response text"),
	}
}

// coerceObject reduces raw provider output to a JSON object. Output that is
// already a valid object passes through untouched; anything else goes
// through balanced-object extraction.
func coerceObject(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}
	return ExtractJSONObject(trimmed)
}
