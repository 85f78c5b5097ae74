package agent

import "strings"

// ExtractCodeBlock pulls Go source out of a model response. Models wrap code
// in ```go or bare ``` fences, sometimes with prose around them; this returns
// the first fenced block, or the whole text stripped of stray fence lines
// when no complete block is found.
func ExtractCodeBlock(text string) string {
	text = strings.TrimSpace(text)

	for _, fence := range []string{"```go", "```golang"} {
		if idx := strings.Index(text, fence); idx != -1 {
			rest := text[idx+len(fence):]
			if end := strings.Index(rest, "```"); end != -1 {
				return strings.TrimSpace(rest[:end])
			}
			return strings.TrimSpace(rest)
		}
	}

	if strings.Contains(text, "```") {
		parts := strings.Split(text, "```")
		if len(parts) >= 3 {
			return strings.TrimSpace(parts[1])
		}
	}

	// No fences at all: assume the whole response is code, but drop any
	// dangling fence markers line by line.
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
