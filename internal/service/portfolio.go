package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pep299/portfolio-pulse/internal/model"
	"github.com/pep299/portfolio-pulse/internal/repository"
)

// Portfolio validates and persists holdings and computes exposure.
type Portfolio struct {
	store repository.Store
	now   func() time.Time
}

func NewPortfolio(store repository.Store) *Portfolio {
	return &Portfolio{
		store: store,
		now:   time.Now,
	}
}

// ParseAndSave parses one holding per line ("TICKER QUANTITY DOLLARVALUE",
// whitespace-separated), recomputes exposure, and replaces the stored
// portfolio wholesale. Malformed rows are dropped silently; the operation
// fails only when zero valid rows remain.
func (p *Portfolio) ParseAndSave(ctx context.Context, rawText string) (*model.Portfolio, error) {
	holdings := parseHoldings(rawText)
	if len(holdings) == 0 {
		return nil, &ValidationError{
			Message: "no valid holdings found; use format: TICKER QUANTITY DOLLAR_VALUE",
		}
	}

	totalValue := 0.0
	for _, h := range holdings {
		totalValue += h.DollarValue
	}
	for i := range holdings {
		if totalValue > 0 {
			holdings[i].Exposure = holdings[i].DollarValue / totalValue * 100
		}
	}

	portfolio := &model.Portfolio{
		Holdings:    holdings,
		TotalValue:  totalValue,
		LastUpdated: p.now(),
	}

	data, err := json.Marshal(portfolio)
	if err != nil {
		return nil, fmt.Errorf("marshaling portfolio: %w", err)
	}
	if err := p.store.Set(ctx, repository.KeyPortfolio, data); err != nil {
		return nil, fmt.Errorf("saving portfolio: %w", err)
	}

	return portfolio, nil
}

// Current returns the saved portfolio, or ErrNoPortfolio.
func (p *Portfolio) Current(ctx context.Context) (*model.Portfolio, error) {
	data, err := p.store.Get(ctx, repository.KeyPortfolio)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, ErrNoPortfolio
		}
		return nil, fmt.Errorf("loading portfolio: %w", err)
	}

	var portfolio model.Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("decoding portfolio: %w", err)
	}
	if !portfolio.HasHoldings() {
		return nil, ErrNoPortfolio
	}
	return &portfolio, nil
}

// Summary returns the display view: total value, holding count, top 5 by
// exposure.
func (p *Portfolio) Summary(ctx context.Context) (*model.PortfolioSummary, error) {
	portfolio, err := p.Current(ctx)
	if err != nil {
		return nil, err
	}

	top := make([]model.Holding, len(portfolio.Holdings))
	copy(top, portfolio.Holdings)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Exposure > top[j].Exposure
	})
	if len(top) > 5 {
		top = top[:5]
	}

	return &model.PortfolioSummary{
		TotalValue:   portfolio.TotalValue,
		HoldingCount: len(portfolio.Holdings),
		TopHoldings:  top,
		LastUpdated:  portfolio.LastUpdated,
	}, nil
}

// parseHoldings keeps a row iff the ticker is non-empty and quantity and
// dollar value parse as positive numbers. The dollar column tolerates "$" and
// thousands separators.
func parseHoldings(rawText string) []model.Holding {
	var holdings []model.Holding

	for _, line := range strings.Split(rawText, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		ticker := strings.ToUpper(fields[0])
		quantity, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || quantity <= 0 {
			continue
		}
		dollarValue, err := strconv.ParseFloat(cleanDollar(fields[2]), 64)
		if err != nil || dollarValue <= 0 {
			continue
		}

		holdings = append(holdings, model.Holding{
			Ticker:      ticker,
			Quantity:    quantity,
			DollarValue: dollarValue,
		})
	}
	return holdings
}

func cleanDollar(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	return strings.ReplaceAll(s, ",", "")
}
