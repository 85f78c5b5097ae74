package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"json fence",
			"Here is the plan:\n```json\n[\"a\", \"b\"]\n```\nDone.",
			`["a", "b"]`,
		},
		{
			"unterminated fence",
			"```json\n[1, 2]",
			"[1, 2]",
		},
		{
			"bare array with prose",
			"Sure! The steps are [\"extract\", \"clean\"] as requested.",
			`["extract", "clean"]`,
		},
		{
			"bare object",
			"Result: {\"ok\": true} trailing",
			`{"ok": true}`,
		},
		{
			"no json at all",
			"no structured content here",
			"no structured content here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.in)
			if got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
