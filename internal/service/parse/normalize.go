package parse

import (
	"strings"
)

// Character substitutions applied before structural analysis. Generated text
// arrives with typographic quotes and a zoo of bullet glyphs depending on
// which path produced the document (markdown, PDF extraction, plain text).
var charReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"▪", "•", // black small square
	"●", "•", // black circle
	"·", "•", // middle dot
)

// Normalize canonicalizes raw digest text before segmentation. It is
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	// Carriage returns and soft hyphens never survive.
	text := strings.ReplaceAll(raw, "\r", "")
	text = strings.ReplaceAll(text, "­", "") // soft hyphen

	text = charReplacer.Replace(text)

	// Trim trailing whitespace per line before unwrapping so a bare "- "
	// line cannot turn into a wrap artifact on a second pass.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")

	// Undo hyphenated line-wrap artifacts from PDF extraction.
	text = strings.ReplaceAll(text, "-\n", "")

	text = collapseBlankRuns(text)

	return text
}

// collapseBlankRuns replaces runs of 3 or more blank lines with exactly one.
func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blanks := 0
	for _, line := range lines {
		if line == "" {
			blanks++
			continue
		}
		out = appendBlankRun(out, blanks)
		blanks = 0
		out = append(out, line)
	}
	out = appendBlankRun(out, blanks)
	return strings.Join(out, "\n")
}

func appendBlankRun(out []string, blanks int) []string {
	if blanks == 0 {
		return out
	}
	if blanks >= 3 {
		blanks = 1
	}
	for i := 0; i < blanks; i++ {
		out = append(out, "")
	}
	return out
}
