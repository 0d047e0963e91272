package parse

import "strings"

// Section is the transient (heading, body) pair between segmentation and
// entity extraction. Never persisted.
type Section struct {
	Heading string
	Body    string
}

// Segmenter splits normalized text into ordered sections.
type Segmenter struct {
	strategies []HeadingStrategy
}

func NewSegmenter() *Segmenter {
	return &Segmenter{strategies: DefaultHeadingStrategies()}
}

// Segment splits text into (heading, body) sections. Each body spans from
// just after its heading to just before the next heading. When no heading
// matches anywhere, it falls back to blank-line paragraphs so that every
// non-empty input yields at least one section.
func (s *Segmenter) Segment(text string) []Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")

	type located struct {
		index   int
		heading string
	}
	var headings []located
	for i, line := range lines {
		if heading, ok := DetectHeading(s.strategies, line, lines[i+1:]); ok {
			headings = append(headings, located{index: i, heading: heading})
		}
	}

	if len(headings) == 0 {
		return paragraphFallback(lines)
	}

	var sections []Section
	for n, h := range headings {
		end := len(lines)
		if n+1 < len(headings) {
			end = headings[n+1].index
		}
		body := strings.TrimSpace(strings.Join(lines[h.index+1:end], "\n"))
		sections = append(sections, Section{Heading: h.heading, Body: body})
	}
	return sections
}

// paragraphFallback splits on blank-line-delimited paragraphs, using each
// paragraph's first line as a synthetic heading.
func paragraphFallback(lines []string) []Section {
	var sections []Section
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		heading := strings.TrimSpace(current[0])
		body := strings.TrimSpace(strings.Join(current[1:], "\n"))
		sections = append(sections, Section{Heading: heading, Body: body})
		current = nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return sections
}
