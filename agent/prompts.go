package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/martinemde/parsegen/statement"
)

const planSystem = `You are an expert Go developer who writes parsers for bank statement text.
You analyze the expected output format and produce an ordered implementation plan.`

const generateSystem = `You are a Go code generator producing bank statement text parsers.
Generate clean, idiomatic Go code that follows these conventions:
- Use only the standard library: strings, strconv, regexp, fmt, errors, sort, time, unicode
- Do NOT import os, os/exec, io, net, net/http, syscall, or unsafe; the code runs sandboxed
- Do NOT use panic() - return errors instead
- Include proper error handling with error returns
- Follow Go naming conventions

The parser is a standalone file in package main defining exactly:

	func Parse(text string) ([][]string, error)

It receives the statement text with one line per visual row of the PDF, and
returns CSV-shaped rows: the header row first, then one row per transaction.`

// planPrompt asks for an ordered list of implementation steps.
func planPrompt(bank string, schema *statement.Schema) string {
	return fmt.Sprintf(`Create a detailed implementation plan for parsing %s bank statement text.

Expected output format:
%s
The plan should cover:
1. Splitting the statement text into lines
2. Pattern matching for transaction lines
3. Parsing dates, descriptions, and amounts
4. Assembling rows matching the expected columns exactly
5. Error handling for malformed lines

Return a JSON array of implementation step strings.`, strings.ToUpper(bank), schema.PromptSummary())
}

// planSchema is the JSON schema for the plan response.
var planSchema = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string"},
}

// generatePrompt asks for the complete parser source. Accumulated errors from
// earlier attempts are included so the model can correct them.
func generatePrompt(bank string, schema *statement.Schema, plan []string, previousErrors []string, notes, textExcerpt string) string {
	planJSON, _ := json.MarshalIndent(plan, "", "  ")

	errText := "None"
	if len(previousErrors) > 0 {
		errText = strings.Join(previousErrors, "\n")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a complete Go parser for %s bank statements.\n\n", strings.ToUpper(bank))
	fmt.Fprintf(&sb, "Required function: func Parse(text string) ([][]string, error)\n")
	fmt.Fprintf(&sb, "Output must match this format exactly (header row first):\n\n%s\n", schema.PromptSummary())

	if notes != "" {
		fmt.Fprintf(&sb, "\nBank-specific notes:\n%s\n", notes)
	}

	if textExcerpt != "" {
		fmt.Fprintf(&sb, "\nExcerpt of the statement text the parser will receive:\n%s\n", textExcerpt)
	}

	fmt.Fprintf(&sb, "\nImplementation plan:\n%s\n", string(planJSON))
	fmt.Fprintf(&sb, "\nPrevious errors to fix:\n%s\n", errText)
	sb.WriteString(`
Generate COMPLETE, WORKING Go code:
1. package main with all necessary imports (standard library only)
2. The exact Parse function signature above
3. The header row as the first returned row
4. Robust handling of lines that are not transactions

Return ONLY the Go code, no explanations.`)

	return sb.String()
}

// fallbackPlan is used when the model fails to return a parseable plan.
func fallbackPlan() []string {
	return []string{
		"Split the statement text into lines",
		"Identify transaction lines with a date-anchored regular expression",
		"Parse dates, descriptions, and amounts from each transaction line",
		"Distinguish debit and credit amounts by column position",
		"Assemble [][]string rows with the header row first",
		"Skip headers, footers, and other non-transaction lines",
	}
}

// excerpt returns up to n lines of text for prompt context.
func excerpt(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
