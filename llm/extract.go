package llm

import "strings"

// ExtractJSON pulls a JSON document out of a model response. Models often
// wrap JSON in markdown fences or surround it with prose; this strips a
// ```json fence if present, otherwise slices from the first opening bracket
// or brace to its matching closer.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx != -1 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	// Slice out the outermost array or object.
	for _, pair := range [][2]string{{"[", "]"}, {"{", "}"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start != -1 && end > start {
			return text[start : end+1]
		}
	}

	return text
}
