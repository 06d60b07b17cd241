package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The backend answers errors in several shapes depending on which layer
// rejected the request: a FastAPI-style validation list under "detail", a
// plain "detail" string, or generic "error"/"message" fields. Extractors are
// tried in priority order; the first match wins.
type extractor func(payload map[string]any) (string, bool)

var extractors = []extractor{
	extractDetailList,
	extractDetailString,
	extractErrorField,
	extractMessageField,
}

// normalizeErrorBody reduces an error payload to a single human-readable
// message, falling back to the operation default when nothing matches.
func normalizeErrorBody(body []byte, fallback string) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return fallback
	}
	for _, ex := range extractors {
		if msg, ok := ex(payload); ok {
			return msg
		}
	}
	return fallback
}

// extractDetailList renders a list of field-level validation issues as
// "<field>: <message>" entries joined by "; ". The field name is the last
// element of the issue's location path.
func extractDetailList(payload map[string]any) (string, bool) {
	items, ok := payload["detail"].([]any)
	if !ok {
		return "", false
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		msg, _ := m["msg"].(string)

		field := "field"
		if loc, ok := m["loc"].([]any); ok && len(loc) > 0 {
			field = fmt.Sprint(loc[len(loc)-1])
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "; "), true
}

func extractDetailString(payload map[string]any) (string, bool) {
	s, ok := payload["detail"].(string)
	return s, ok && s != ""
}

func extractErrorField(payload map[string]any) (string, bool) {
	s, ok := payload["error"].(string)
	return s, ok && s != ""
}

func extractMessageField(payload map[string]any) (string, bool) {
	s, ok := payload["message"].(string)
	return s, ok && s != ""
}
