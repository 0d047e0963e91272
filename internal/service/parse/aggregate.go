package parse

import (
	"github.com/pep299/portfolio-pulse/internal/model"
)

// Group is one logical ticker group in grouped aggregation mode.
type Group struct {
	Ticker  string           `json:"ticker"`
	Cards   []model.Card     `json:"cards"`
	Sources []model.Citation `json:"sources"`
}

// AggregateFlat preserves section order: one card per section.
func AggregateFlat(cards []model.Card) []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)
	return out
}

// AggregateGrouped merges cards sharing a ticker tag into one group per
// ticker, deduplicating citations by URL across the group. Cards without a
// tag, and general market tags, keep a group of their own so they stay
// displayable without polluting per-holding groups. Original section order is
// the display tiebreak throughout.
func AggregateGrouped(cards []model.Card, tickers *TickerTable) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, card := range cards {
		tag := card.TickerTag
		groupable := tag != "" && !tickers.IsGeneral(tag)

		if groupable {
			if at, ok := index[tag]; ok {
				groups[at].Cards = append(groups[at].Cards, card)
				continue
			}
			index[tag] = len(groups)
		}
		groups = append(groups, Group{Ticker: tag, Cards: []model.Card{card}})
	}

	for i := range groups {
		groups[i].Sources = dedupeCitations(groups[i].Cards)
	}
	return groups
}

func dedupeCitations(cards []model.Card) []model.Citation {
	var sources []model.Citation
	seen := make(map[string]bool)
	for _, card := range cards {
		for _, citation := range card.Sources {
			key := citationKey(citation.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			sources = append(sources, citation)
		}
	}
	return sources
}
