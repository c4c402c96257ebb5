package reference

import "strings"

// ParseExtra parses Zotero's free-form multi-line "Extra" field into a map.
//
// Each line of the form "Key: Value" becomes one entry. Keys are
// normalized to lowercase with all whitespace removed ("Event Short"
// and "eventshort" are the same key); values are trimmed. Lines without
// a colon are ignored. When the same normalized key appears on more
// than one line, the last occurrence wins.
func ParseExtra(text string) map[string]string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	extra := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = normalizeExtraKey(key)
		if key == "" {
			continue
		}
		extra[key] = strings.TrimSpace(value)
	}

	if len(extra) == 0 {
		return nil
	}
	return extra
}

// normalizeExtraKey lowercases a key and strips all whitespace.
func normalizeExtraKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(key)), "")
}
