package parse

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pep299/portfolio-pulse/internal/model"
)

// Extraction is the structured content pulled out of one section.
type Extraction struct {
	Bullets     []string
	Citations   []model.Citation
	TickerTag   string
	Exposure    float64
	HasExposure bool
}

var (
	urlRe      = regexp.MustCompile(`https?://[^\s)\]>"']+`)
	exposureRe = regexp.MustCompile(`(?i)([0-9][\d.]*)%\s*(?:of\s+(?:the\s+|your\s+)?portfolio|portfolio|exposure|position|holding)`)
)

// Extractor pulls bullets, citations, ticker tags and exposure figures out of
// segmented sections.
type Extractor struct {
	strategies []HeadingStrategy
	tickers    *TickerTable
}

func NewExtractor() *Extractor {
	return &Extractor{
		strategies: DefaultHeadingStrategies(),
		tickers:    NewTickerTable(),
	}
}

// Extract parses one section.
func (e *Extractor) Extract(section Section) Extraction {
	lines := strings.Split(section.Body, "\n")

	citStart, citEnd := e.citationRegion(lines)

	var out Extraction
	out.Bullets = e.extractBullets(lines, citStart, citEnd)
	if citStart >= 0 {
		out.Citations = extractCitations(lines[citStart+1 : citEnd])
	}
	out.TickerTag = e.tickers.FromHeading(section.Heading)
	if out.TickerTag == "" {
		out.TickerTag = e.tickers.FromBody(section.Body)
	}
	if m := exposureRe.FindStringSubmatch(section.Body); m != nil {
		if v, err := strconv.ParseFloat(strings.TrimRight(m[1], "."), 64); err == nil {
			out.Exposure = v
			out.HasExposure = true
		}
	}
	return out
}

// IsGeneralTag reports whether a tag names market-wide commentary.
func (e *Extractor) IsGeneralTag(tag string) bool {
	return e.tickers.IsGeneral(tag)
}

// citationRegion finds the half-open candidate range following the first
// Sources/Citations label: every line until a blank line or a new
// heading-like line. Returns (-1, -1) when no label exists.
func (e *Extractor) citationRegion(lines []string) (int, int) {
	start := -1
	for i, line := range lines {
		if isSourcesLabel(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return -1, -1
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			end = i
			break
		}
		if _, ok := DetectHeading(e.strategies, lines[i], lines[i+1:]); ok {
			end = i
			break
		}
	}
	return start, end
}

// extractBullets collects bulleted lines outside the citation region,
// space-joining continuation lines onto the bullet they follow.
func (e *Extractor) extractBullets(lines []string, citStart, citEnd int) []string {
	var bullets []string
	inBullet := false

	for i, raw := range lines {
		if citStart >= 0 && i >= citStart && i < citEnd {
			inBullet = false
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			inBullet = false
			continue
		}
		if isSourcesLabel(line) {
			inBullet = false
			continue
		}
		if bulletLineRe.MatchString(line) {
			bullets = append(bullets, bulletLineRe.ReplaceAllString(line, ""))
			inBullet = true
			continue
		}
		if inBullet {
			// Continuation of the previous bullet, not a new one.
			bullets[len(bullets)-1] += " " + line
			continue
		}
	}
	return bullets
}

// extractCitations turns candidate lines into citations. A candidate only
// contributes when it contains a URL. Duplicates are dropped by URL,
// case-insensitively on scheme and host, first occurrence wins.
func extractCitations(candidates []string) []model.Citation {
	var citations []model.Citation
	seen := make(map[string]bool)

	for _, raw := range candidates {
		line := strings.TrimSpace(raw)
		rawURL := urlRe.FindString(line)
		if rawURL == "" {
			continue
		}
		rawURL = strings.TrimRight(rawURL, ".,;:!?")

		key := citationKey(rawURL)
		if seen[key] {
			continue
		}
		seen[key] = true

		citations = append(citations, model.Citation{
			Title: citationTitle(line, rawURL),
			URL:   rawURL,
		})
	}
	return citations
}

// citationKey lowercases scheme and host but leaves the path alone.
func citationKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Scheme+"://"+u.Host) + u.RequestURI()
}

// citationTitle is the candidate line with the URL and leading bullet, dash
// and quote punctuation stripped, defaulting to "Source".
func citationTitle(line, rawURL string) string {
	title := strings.Replace(line, rawURL, "", 1)
	title = strings.Trim(title, " \t-•*\"'[]():,.")
	if title == "" {
		return "Source"
	}
	return title
}
