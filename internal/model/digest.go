package model

import "time"

// Category classifies a card by the tone of its heading.
type Category string

const (
	CategoryNews          Category = "news"
	CategoryConsideration Category = "consideration"
	CategoryOpportunity   Category = "opportunity"
)

// Citation is one cited source. Unique by URL within the owning card.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Card is one displayable unit derived from a text section.
// Immutable once produced by the pipeline.
type Card struct {
	Title     string     `json:"title"`
	Bullets   []string   `json:"bullets"`
	Sources   []Citation `json:"sources"`
	Category  Category   `json:"category"`
	TickerTag string     `json:"ticker_tag,omitempty"`
	Exposure  float64    `json:"exposure,omitempty"`
}

// Digest is the structured output of one generation cycle. Appended to a
// history list most-recent-first and never mutated after creation.
type Digest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	TimeLabel   string    `json:"time_label"`
	GeneratedAt time.Time `json:"generated_at"`
	Cards       []Card    `json:"cards"`
}

// CardsByCategory is the category view consumed by the renderer.
func (d *Digest) CardsByCategory() map[Category][]Card {
	view := make(map[Category][]Card)
	for _, card := range d.Cards {
		view[card.Category] = append(view[card.Category], card)
	}
	return view
}
