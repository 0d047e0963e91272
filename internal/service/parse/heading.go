package parse

import (
	"regexp"
	"strings"
)

// HeadingStrategy tests whether a line is a section heading. Strategies are
// tried in registration order; the first match wins. The lookahead slice holds
// the lines following the candidate, for strategies that need context.
type HeadingStrategy struct {
	Name  string
	Match func(line string, lookahead []string) (heading string, ok bool)
}

var (
	numberedRe   = regexp.MustCompile(`^\d{1,3}[.)]\s+(.+)$`)
	articleRe    = regexp.MustCompile(`(?i)^article\s+\d+\s*(?:[-:]\s*(.*))?$`)
	markdownRe   = regexp.MustCompile(`^#{1,3}\s+(.+)$`)
	boldOnlyRe   = regexp.MustCompile(`^\*\*(.+)\*\*$`)
	labelLineRe  = regexp.MustCompile(`^[A-Za-z][\w .&/()-]{0,60}:\s+\S.*$`)
	bulletLineRe = regexp.MustCompile(`^(?:•|-|\*|\d+\.)\s+`)
	sourcesRe    = regexp.MustCompile(`(?i)^(?:\*\*\s*)?(?:citations?|sources?)\s*:`)
)

// isSourcesLabel reports whether the line is a Sources/Citations label. Such
// lines are never headings, whatever else would match them.
func isSourcesLabel(line string) bool {
	return sourcesRe.MatchString(strings.TrimSpace(line))
}

func matchNumbered(line string, _ []string) (string, bool) {
	if m := numberedRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := articleRe.FindStringSubmatch(line); m != nil {
		title := strings.TrimSpace(m[1])
		if title == "" {
			title = strings.TrimSpace(line)
		}
		return title, true
	}
	return "", false
}

func matchMarkdown(line string, _ []string) (string, bool) {
	if m := markdownRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func matchBoldOnly(line string, _ []string) (string, bool) {
	if m := boldOnlyRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// matchLabelHeadline accepts a "Label: Headline" line only when a bullet shows
// up within the next 8 non-blank lines, giving up after 5 non-bullet lines.
// Without the bullet requirement every "Key: value" row would become a
// section of its own.
func matchLabelHeadline(line string, lookahead []string) (string, bool) {
	if !labelLineRe.MatchString(line) {
		return "", false
	}

	nonBlank := 0
	nonBullet := 0
	for _, next := range lookahead {
		if strings.TrimSpace(next) == "" {
			continue
		}
		nonBlank++
		if nonBlank > 8 {
			break
		}
		if bulletLineRe.MatchString(next) {
			return strings.TrimSpace(line), true
		}
		nonBullet++
		if nonBullet >= 5 {
			break
		}
	}
	return "", false
}

// DefaultHeadingStrategies returns the heading detection cascade in priority
// order.
func DefaultHeadingStrategies() []HeadingStrategy {
	return []HeadingStrategy{
		{Name: "numbered", Match: matchNumbered},
		{Name: "markdown", Match: matchMarkdown},
		{Name: "bold", Match: matchBoldOnly},
		{Name: "label-headline", Match: matchLabelHeadline},
	}
}

// DetectHeading runs the cascade against one line. Sources/Citations labels
// never match.
func DetectHeading(strategies []HeadingStrategy, line string, lookahead []string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || isSourcesLabel(trimmed) {
		return "", false
	}
	for _, strategy := range strategies {
		if heading, ok := strategy.Match(trimmed, lookahead); ok {
			return heading, true
		}
	}
	return "", false
}
