package parse

import (
	"regexp"
	"sort"
	"strings"
)

// TickerTable maps company names and symbols to ticker tags. Data-driven so
// coverage can grow without touching the parsing control flow.
type TickerTable struct {
	ordered []tickerAlias
	general map[string]bool
}

type tickerAlias struct {
	alias  string
	ticker string
}

// defaultAliases covers the holdings this widget has been pointed at plus the
// large caps that dominate generated digests.
var defaultAliases = map[string]string{
	"nvidia":    "NVDA",
	"nvda":      "NVDA",
	"palantir":  "PLTR",
	"pltr":      "PLTR",
	"ionq":      "IONQ",
	"oklo":      "OKLO",
	"apple":     "AAPL",
	"aapl":      "AAPL",
	"microsoft": "MSFT",
	"msft":      "MSFT",
	"tesla":     "TSLA",
	"tsla":      "TSLA",
	"amazon":    "AMZN",
	"amzn":      "AMZN",
	"alphabet":  "GOOGL",
	"google":    "GOOGL",
	"googl":     "GOOGL",
	"meta":      "META",
	"intel":     "INTC",
	"intc":      "INTC",
	"amd":       "AMD",
	"vti":       "VTI",
	"vong":      "VONG",
	"gev":       "GEV",
	"bcti":      "BCTI",
}

// generalTags mark market-wide commentary: displayable, but excluded from
// per-holding aggregation.
var generalTags = map[string]bool{
	"MARKET":  true,
	"GENERAL": true,
	"MACRO":   true,
	"SECTOR":  true,
}

func NewTickerTable() *TickerTable {
	// Matching order: longest alias first, equal lengths alphabetically, so
	// the same heading always yields the same tag.
	ordered := make([]tickerAlias, 0, len(defaultAliases))
	for alias, ticker := range defaultAliases {
		ordered = append(ordered, tickerAlias{alias: alias, ticker: ticker})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].alias) != len(ordered[j].alias) {
			return len(ordered[i].alias) > len(ordered[j].alias)
		}
		return ordered[i].alias < ordered[j].alias
	})

	return &TickerTable{
		ordered: ordered,
		general: generalTags,
	}
}

var (
	marketContextRe = regexp.MustCompile(`Market Context[^A-Z]*\b([A-Z]{2,5})\b`)
	parenTickerRe   = regexp.MustCompile(`\(([A-Z]{2,5})\)`)
)

// FromHeading matches the heading against the alias table, case-insensitively
// on substrings. Aliases are tried longest first so "nvidia" beats an embedded
// "amd"; ties fall to alphabetical order.
func (t *TickerTable) FromHeading(heading string) string {
	lower := strings.ToLower(heading)
	for _, entry := range t.ordered {
		if strings.Contains(lower, entry.alias) {
			return entry.ticker
		}
	}
	return ""
}

// FromBody scans the body for an uppercase token after the phrase
// "Market Context", then for a token inside parentheses.
func (t *TickerTable) FromBody(body string) string {
	if m := marketContextRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := parenTickerRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// IsGeneral reports whether the tag is market-wide commentary rather than a
// holding.
func (t *TickerTable) IsGeneral(tag string) bool {
	return t.general[tag]
}
