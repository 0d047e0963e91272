package parse

import (
	"strings"

	"github.com/pep299/portfolio-pulse/internal/model"
)

// Keyword sets are checked in a fixed order against the lower-cased heading:
// consideration first, opportunity second, News as the default. The body is
// never consulted, so categorization is total and pure over the heading.
var considerationKeywords = []string{
	"risk", "concern", "warning", "regulatory", "headwind",
	"lawsuit", "probe", "investigation", "downgrade", "decline",
	"caution", "threat", "volatil", "selloff", "recall",
}

var opportunityKeywords = []string{
	"growth", "momentum", "record", "surge", "rally",
	"upgrade", "breakout", "expansion", "beat", "opportunity",
	"launch", "milestone", "partnership",
}

// Categorize assigns a category from the heading alone.
func Categorize(heading string) model.Category {
	lower := strings.ToLower(heading)
	for _, kw := range considerationKeywords {
		if strings.Contains(lower, kw) {
			return model.CategoryConsideration
		}
	}
	for _, kw := range opportunityKeywords {
		if strings.Contains(lower, kw) {
			return model.CategoryOpportunity
		}
	}
	return model.CategoryNews
}
