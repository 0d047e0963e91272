package model

import "time"

// Holding is a single position in the portfolio. Exposure is derived from
// the full holding set and recomputed on every save, never user-supplied.
type Holding struct {
	Ticker      string  `json:"ticker"`
	Quantity    float64 `json:"quantity"`
	DollarValue float64 `json:"dollar_value"`
	Exposure    float64 `json:"exposure"`
}

type Portfolio struct {
	Holdings    []Holding `json:"holdings"`
	TotalValue  float64   `json:"total_value"`
	LastUpdated time.Time `json:"last_updated"`
}

// PortfolioSummary is the display view of a saved portfolio.
type PortfolioSummary struct {
	TotalValue   float64   `json:"total_value"`
	HoldingCount int       `json:"holding_count"`
	TopHoldings  []Holding `json:"top_holdings"`
	LastUpdated  time.Time `json:"last_updated"`
}

func (p *Portfolio) HasHoldings() bool {
	return p != nil && len(p.Holdings) > 0
}
