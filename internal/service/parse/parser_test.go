package parse

import (
	"strings"
	"testing"

	"github.com/pep299/portfolio-pulse/internal/model"
)

func TestParseCards(t *testing.T) {
	parser := NewParser()

	t.Run("full document", func(t *testing.T) {
		raw := strings.Join([]string{
			"## Portfolio Digest – Morning Edition",
			"",
			"1. Nvidia Datacenter Surge",
			"",
			"• Hyperscaler orders up 40% quarter over quarter",
			"• NVDA represents 25.5% of your portfolio",
			"",
			"Sources:",
			"- Reuters (https://reuters.com/chips)",
			"",
			"2. Regulatory Concerns for Big Tech",
			"",
			"• Antitrust probe widens in the EU",
			"",
			"Sources:",
			"- Bloomberg (https://bloomberg.com/eu)",
		}, "\n")

		cards := parser.ParseCards(raw)
		if len(cards) != 2 {
			t.Fatalf("ParseCards returned %d cards, want 2", len(cards))
		}

		first := cards[0]
		if first.Title != "Nvidia Datacenter Surge" {
			t.Errorf("Title = %q", first.Title)
		}
		if first.Category != model.CategoryOpportunity {
			t.Errorf("Category = %q, want opportunity", first.Category)
		}
		if first.TickerTag != "NVDA" {
			t.Errorf("TickerTag = %q", first.TickerTag)
		}
		if len(first.Bullets) != 2 {
			t.Errorf("Bullets = %v", first.Bullets)
		}
		if len(first.Sources) != 1 || first.Sources[0].URL != "https://reuters.com/chips" {
			t.Errorf("Sources = %+v", first.Sources)
		}
		if first.Exposure != 25.5 {
			t.Errorf("Exposure = %v", first.Exposure)
		}

		second := cards[1]
		if second.Category != model.CategoryConsideration {
			t.Errorf("second.Category = %q, want consideration", second.Category)
		}
	})

	t.Run("section without bullets falls back to paragraph", func(t *testing.T) {
		raw := strings.Join([]string{
			"## Market Wrap",
			"Stocks drifted sideways as traders",
			"waited on inflation data.",
			"",
			"Sources:",
			"- Reuters (https://reuters.com/wrap)",
		}, "\n")

		cards := parser.ParseCards(raw)
		if len(cards) != 1 {
			t.Fatalf("ParseCards returned %d cards, want 1", len(cards))
		}
		want := "Stocks drifted sideways as traders waited on inflation data."
		if len(cards[0].Bullets) != 1 || cards[0].Bullets[0] != want {
			t.Errorf("Bullets = %v, want [%q]", cards[0].Bullets, want)
		}
	})

	t.Run("empty section is dropped", func(t *testing.T) {
		raw := "## Empty Section\n\n## Full Section\n• one bullet"
		cards := parser.ParseCards(raw)
		if len(cards) != 1 {
			t.Fatalf("ParseCards returned %d cards, want 1", len(cards))
		}
		if cards[0].Title != "Full Section" {
			t.Errorf("Title = %q", cards[0].Title)
		}
	})

	t.Run("empty input yields no cards", func(t *testing.T) {
		if cards := parser.ParseCards("   \n\n"); len(cards) != 0 {
			t.Errorf("ParseCards = %v", cards)
		}
	})

	t.Run("messy glyphs survive the pipeline", func(t *testing.T) {
		raw := "1. “Smart” Quote Heading\r\n\r\n▪ bullet with – dash\r\n"
		cards := parser.ParseCards(raw)
		if len(cards) != 1 {
			t.Fatalf("ParseCards returned %d cards, want 1", len(cards))
		}
		if cards[0].Title != `"Smart" Quote Heading` {
			t.Errorf("Title = %q", cards[0].Title)
		}
		if cards[0].Bullets[0] != "bullet with - dash" {
			t.Errorf("Bullets[0] = %q", cards[0].Bullets[0])
		}
	})
}

func TestDocumentTitle(t *testing.T) {
	parser := NewParser()

	t.Run("heading mentioning digest wins", func(t *testing.T) {
		raw := "## Portfolio Digest – Morning Edition\n\n1. Something Else\n• bullet"
		got := parser.DocumentTitle(raw, "fallback")
		if got != "Portfolio Digest - Morning Edition" {
			t.Errorf("DocumentTitle = %q", got)
		}
	})

	t.Run("fallback when no digest heading", func(t *testing.T) {
		raw := "1. Chip Demand Surge\n• bullet"
		if got := parser.DocumentTitle(raw, "Afternoon Digest"); got != "Afternoon Digest" {
			t.Errorf("DocumentTitle = %q", got)
		}
	})
}
