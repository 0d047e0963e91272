package parse

import "testing"

func TestDetectHeading(t *testing.T) {
	strategies := DefaultHeadingStrategies()

	tests := []struct {
		name      string
		line      string
		lookahead []string
		heading   string
		ok        bool
	}{
		{
			name:    "numbered with dot",
			line:    "1. Chip Demand Surge",
			heading: "Chip Demand Surge",
			ok:      true,
		},
		{
			name:    "numbered with parenthesis",
			line:    "12) Quarterly Outlook",
			heading: "Quarterly Outlook",
			ok:      true,
		},
		{
			name:    "article with title",
			line:    "Article 3 - Energy Transition",
			heading: "Energy Transition",
			ok:      true,
		},
		{
			name:    "article without title keeps whole line",
			line:    "Article 2",
			heading: "Article 2",
			ok:      true,
		},
		{
			name:    "markdown h2",
			line:    "## Market Overview",
			heading: "Market Overview",
			ok:      true,
		},
		{
			name:    "bold only line",
			line:    "**Defense Spending Ramp**",
			heading: "Defense Spending Ramp",
			ok:      true,
		},
		{
			name:      "label headline with bullet in lookahead",
			line:      "NVDA: Strong datacenter quarter",
			lookahead: []string{"", "• Revenue beat estimates"},
			heading:   "NVDA: Strong datacenter quarter",
			ok:        true,
		},
		{
			name:      "label headline without any bullet",
			line:      "Model: gpt-class frontier system",
			lookahead: []string{"plain prose", "more prose"},
			ok:        false,
		},
		{
			name: "label headline gives up after five non-bullet lines",
			line: "NVDA: Strong datacenter quarter",
			lookahead: []string{
				"one", "two", "three", "four", "five",
				"• a bullet too far down",
			},
			ok: false,
		},
		{
			name:      "sources label never a heading",
			line:      "Sources: Reuters, Bloomberg",
			lookahead: []string{"• bullet"},
			ok:        false,
		},
		{
			name: "bold sources label never a heading",
			line: "**Citations:**",
			ok:   false,
		},
		{
			name: "blank line",
			line: "   ",
			ok:   false,
		},
		{
			name: "plain prose",
			line: "Demand for accelerators keeps climbing.",
			ok:   false,
		},
		{
			name:      "numbered wins over label headline",
			line:      "2. Outlook: cautious optimism",
			lookahead: []string{"• bullet"},
			heading:   "Outlook: cautious optimism",
			ok:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			heading, ok := DetectHeading(strategies, tt.line, tt.lookahead)
			if ok != tt.ok {
				t.Fatalf("DetectHeading(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if heading != tt.heading {
				t.Errorf("DetectHeading(%q) = %q, want %q", tt.line, heading, tt.heading)
			}
		})
	}
}
