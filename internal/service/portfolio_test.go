package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pep299/portfolio-pulse/internal/repository"
)

func TestPortfolioParseAndSave(t *testing.T) {
	ctx := context.Background()

	t.Run("two holdings with exposure", func(t *testing.T) {
		svc := NewPortfolio(repository.NewMemoryStore())

		portfolio, err := svc.ParseAndSave(ctx, "NVDA 10 5000\nPLTR 5 1000")
		if err != nil {
			t.Fatalf("ParseAndSave failed: %v", err)
		}

		if portfolio.TotalValue != 6000 {
			t.Errorf("TotalValue = %v, want 6000", portfolio.TotalValue)
		}
		if len(portfolio.Holdings) != 2 {
			t.Fatalf("Holdings = %d, want 2", len(portfolio.Holdings))
		}
		if math.Abs(portfolio.Holdings[0].Exposure-83.33) > 0.01 {
			t.Errorf("NVDA exposure = %v, want ~83.33", portfolio.Holdings[0].Exposure)
		}
		if math.Abs(portfolio.Holdings[1].Exposure-16.67) > 0.01 {
			t.Errorf("PLTR exposure = %v, want ~16.67", portfolio.Holdings[1].Exposure)
		}

		sum := 0.0
		for _, h := range portfolio.Holdings {
			sum += h.Exposure
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("exposure sum = %v, want 100", sum)
		}
	})

	t.Run("malformed rows dropped", func(t *testing.T) {
		svc := NewPortfolio(repository.NewMemoryStore())

		text := "NVDA 10 5000\n" +
			"garbage\n" +
			"PLTR abc 1000\n" +
			"IONQ 5 -200\n" +
			"OKLO 0 100\n" +
			"aapl 2 $1,000\n"

		portfolio, err := svc.ParseAndSave(ctx, text)
		if err != nil {
			t.Fatalf("ParseAndSave failed: %v", err)
		}
		if len(portfolio.Holdings) != 2 {
			t.Fatalf("Holdings = %+v, want NVDA and AAPL only", portfolio.Holdings)
		}
		if portfolio.Holdings[1].Ticker != "AAPL" {
			t.Errorf("ticker not uppercased: %q", portfolio.Holdings[1].Ticker)
		}
		if portfolio.Holdings[1].DollarValue != 1000 {
			t.Errorf("dollar value = %v, want 1000", portfolio.Holdings[1].DollarValue)
		}
	})

	t.Run("zero valid rows is a validation error", func(t *testing.T) {
		svc := NewPortfolio(repository.NewMemoryStore())

		_, err := svc.ParseAndSave(ctx, "not a holding\nalso nothing")
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("save replaces previous portfolio wholesale", func(t *testing.T) {
		svc := NewPortfolio(repository.NewMemoryStore())

		if _, err := svc.ParseAndSave(ctx, "NVDA 10 5000\nPLTR 5 1000"); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if _, err := svc.ParseAndSave(ctx, "IONQ 3 900"); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		current, err := svc.Current(ctx)
		if err != nil {
			t.Fatalf("Current failed: %v", err)
		}
		if len(current.Holdings) != 1 || current.Holdings[0].Ticker != "IONQ" {
			t.Errorf("Current = %+v, want just IONQ", current.Holdings)
		}
		if current.Holdings[0].Exposure != 100 {
			t.Errorf("single holding exposure = %v, want 100", current.Holdings[0].Exposure)
		}
	})
}

func TestPortfolioCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		svc := NewPortfolio(repository.NewMemoryStore())
		if _, err := svc.Current(ctx); !errors.Is(err, ErrNoPortfolio) {
			t.Errorf("err = %v, want ErrNoPortfolio", err)
		}
	})
}

func TestPortfolioSummary(t *testing.T) {
	ctx := context.Background()
	svc := NewPortfolio(repository.NewMemoryStore())

	text := "A 1 100\nB 1 200\nC 1 300\nD 1 400\nE 1 500\nF 1 600\nG 1 700"
	if _, err := svc.ParseAndSave(ctx, text); err != nil {
		t.Fatalf("ParseAndSave failed: %v", err)
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.HoldingCount != 7 {
		t.Errorf("HoldingCount = %d, want 7", summary.HoldingCount)
	}
	if len(summary.TopHoldings) != 5 {
		t.Fatalf("TopHoldings = %d, want 5", len(summary.TopHoldings))
	}
	if summary.TopHoldings[0].Ticker != "G" {
		t.Errorf("TopHoldings[0] = %q, want G (largest exposure)", summary.TopHoldings[0].Ticker)
	}
	if summary.TopHoldings[4].Ticker != "C" {
		t.Errorf("TopHoldings[4] = %q, want C", summary.TopHoldings[4].Ticker)
	}
	if summary.TotalValue != 2800 {
		t.Errorf("TotalValue = %v, want 2800", summary.TotalValue)
	}
}
