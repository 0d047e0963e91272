package parse

import (
	"strings"

	"github.com/pep299/portfolio-pulse/internal/model"
)

// Parser is the full normalization and extraction pipeline over one document.
type Parser struct {
	segmenter *Segmenter
	extractor *Extractor
	tickers   *TickerTable
}

func NewParser() *Parser {
	return &Parser{
		segmenter: NewSegmenter(),
		extractor: NewExtractor(),
		tickers:   NewTickerTable(),
	}
}

// Tickers exposes the alias table for aggregation callers.
func (p *Parser) Tickers() *TickerTable {
	return p.tickers
}

// ParseCards converts raw digest text into ordered cards. Sections that yield
// neither bullets nor a fallback paragraph are dropped; that is a per-card
// condition, never fatal.
func (p *Parser) ParseCards(raw string) []model.Card {
	text := Normalize(raw)

	var cards []model.Card
	for _, section := range p.segmenter.Segment(text) {
		extraction := p.extractor.Extract(section)

		if len(extraction.Bullets) == 0 {
			if fallback := fallbackParagraph(section.Body); fallback != "" {
				extraction.Bullets = []string{fallback}
			} else {
				continue
			}
		}

		card := model.Card{
			Title:     section.Heading,
			Bullets:   extraction.Bullets,
			Sources:   extraction.Citations,
			Category:  Categorize(section.Heading),
			TickerTag: extraction.TickerTag,
		}
		if extraction.HasExposure {
			card.Exposure = extraction.Exposure
		}
		cards = append(cards, card)
	}
	return cards
}

// DocumentTitle picks a digest title out of the text: the first heading-like
// line mentioning "digest", else the given default.
func (p *Parser) DocumentTitle(raw, fallback string) string {
	text := Normalize(raw)
	for _, section := range p.segmenter.Segment(text) {
		if strings.Contains(strings.ToLower(section.Heading), "digest") {
			return section.Heading
		}
	}
	return fallback
}

// fallbackParagraph returns the section body's free text when it has no
// bullets to offer: everything before the citations label, space-joined.
func fallbackParagraph(body string) string {
	var parts []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isSourcesLabel(trimmed) {
			break
		}
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, " ")
}
