package parse

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	extractor := NewExtractor()

	t.Run("bullets citations ticker and exposure", func(t *testing.T) {
		section := Section{
			Heading: "Nvidia Datacenter Momentum",
			Body: strings.Join([]string{
				"• Hyperscaler orders up 40% quarter over quarter",
				"• NVDA represents 25.5% of your portfolio",
				"",
				"Sources:",
				"- Reuters (https://reuters.com/chips)",
				"- Bloomberg (https://bloomberg.com/nvda)",
			}, "\n"),
		}

		got := extractor.Extract(section)

		if len(got.Bullets) != 2 {
			t.Fatalf("Bullets = %v, want 2", got.Bullets)
		}
		if got.Bullets[0] != "Hyperscaler orders up 40% quarter over quarter" {
			t.Errorf("Bullets[0] = %q", got.Bullets[0])
		}
		if len(got.Citations) != 2 {
			t.Fatalf("Citations = %v, want 2", got.Citations)
		}
		if got.Citations[0].Title != "Reuters" || got.Citations[0].URL != "https://reuters.com/chips" {
			t.Errorf("Citations[0] = %+v", got.Citations[0])
		}
		if got.TickerTag != "NVDA" {
			t.Errorf("TickerTag = %q, want NVDA", got.TickerTag)
		}
		if !got.HasExposure || got.Exposure != 25.5 {
			t.Errorf("Exposure = %v (has=%v), want 25.5", got.Exposure, got.HasExposure)
		}
	})

	t.Run("citation lines never become bullets", func(t *testing.T) {
		section := Section{
			Heading: "Quarterly Recap",
			Body: strings.Join([]string{
				"• Only real bullet",
				"",
				"Sources:",
				"- Reuters (https://reuters.com/a)",
			}, "\n"),
		}

		got := extractor.Extract(section)
		if len(got.Bullets) != 1 || got.Bullets[0] != "Only real bullet" {
			t.Errorf("Bullets = %v", got.Bullets)
		}
	})

	t.Run("continuation lines join previous bullet", func(t *testing.T) {
		section := Section{
			Body: strings.Join([]string{
				"• Orders climbed sharply as cloud providers",
				"raced to secure capacity",
				"• Second bullet",
			}, "\n"),
		}

		got := extractor.Extract(section)
		want := []string{
			"Orders climbed sharply as cloud providers raced to secure capacity",
			"Second bullet",
		}
		if len(got.Bullets) != len(want) {
			t.Fatalf("Bullets = %v", got.Bullets)
		}
		for i := range want {
			if got.Bullets[i] != want[i] {
				t.Errorf("Bullets[%d] = %q, want %q", i, got.Bullets[i], want[i])
			}
		}
	})

	t.Run("duplicate citation URLs keep first occurrence", func(t *testing.T) {
		section := Section{
			Body: strings.Join([]string{
				"Sources:",
				"- Reuters (https://Reuters.com/chips)",
				"- REUTERS WIRE (https://REUTERS.COM/chips)",
				"- Bloomberg (https://bloomberg.com/x)",
			}, "\n"),
		}

		got := extractor.Extract(section)
		if len(got.Citations) != 2 {
			t.Fatalf("Citations = %+v, want 2", got.Citations)
		}
		if got.Citations[0].Title != "Reuters" {
			t.Errorf("Citations[0].Title = %q, want first occurrence kept", got.Citations[0].Title)
		}
	})

	t.Run("citation without title defaults to Source", func(t *testing.T) {
		section := Section{
			Body: "Sources:\n- https://example.com/report",
		}

		got := extractor.Extract(section)
		if len(got.Citations) != 1 {
			t.Fatalf("Citations = %+v", got.Citations)
		}
		if got.Citations[0].Title != "Source" {
			t.Errorf("Title = %q, want Source", got.Citations[0].Title)
		}
	})

	t.Run("citation region ends at blank line", func(t *testing.T) {
		section := Section{
			Body: strings.Join([]string{
				"Sources:",
				"- Reuters (https://reuters.com/a)",
				"",
				"Unrelated trailing prose with https://stray.example.com/x",
			}, "\n"),
		}

		got := extractor.Extract(section)
		if len(got.Citations) != 1 {
			t.Errorf("Citations = %+v, want 1", got.Citations)
		}
	})

	t.Run("lines without URLs contribute no citation", func(t *testing.T) {
		section := Section{
			Body: "Sources:\n- Company press release\n- https://real.example.com/a",
		}

		got := extractor.Extract(section)
		if len(got.Citations) != 1 || got.Citations[0].URL != "https://real.example.com/a" {
			t.Errorf("Citations = %+v", got.Citations)
		}
	})

	t.Run("percent without portfolio context is not exposure", func(t *testing.T) {
		section := Section{
			Body: "• Shares rose 40% on the news",
		}

		got := extractor.Extract(section)
		if got.HasExposure {
			t.Errorf("HasExposure = true for %v", got.Exposure)
		}
	})

	t.Run("ticker from parenthesized symbol in body", func(t *testing.T) {
		section := Section{
			Heading: "Quantum Milestone",
			Body:    "• The company (IONQ) demonstrated a new qubit record",
		}

		got := extractor.Extract(section)
		if got.TickerTag != "IONQ" {
			t.Errorf("TickerTag = %q, want IONQ", got.TickerTag)
		}
	})
}

func TestTickerTable(t *testing.T) {
	table := NewTickerTable()

	t.Run("longest alias wins", func(t *testing.T) {
		// "Palantir" contains no shorter alias, but "nvidia" vs "amd"
		// ordering must be deterministic.
		if got := table.FromHeading("Nvidia and AMD battle for share"); got != "NVDA" {
			t.Errorf("FromHeading = %q, want NVDA", got)
		}
	})

	t.Run("equal length aliases resolve stably", func(t *testing.T) {
		// "tesla" and "apple" are the same length; alphabetical order
		// breaks the tie, and repeated calls must agree.
		heading := "Tesla and Apple face EU scrutiny"
		for i := 0; i < 100; i++ {
			if got := table.FromHeading(heading); got != "AAPL" {
				t.Fatalf("FromHeading = %q on call %d, want AAPL every time", got, i)
			}
		}
	})

	t.Run("heading without alias", func(t *testing.T) {
		if got := table.FromHeading("Broad Market Wrap"); got != "" {
			t.Errorf("FromHeading = %q, want empty", got)
		}
	})

	t.Run("market context token from body", func(t *testing.T) {
		if got := table.FromBody("Market Context: PLTR led software higher"); got != "PLTR" {
			t.Errorf("FromBody = %q, want PLTR", got)
		}
	})

	t.Run("general tags", func(t *testing.T) {
		for _, tag := range []string{"MARKET", "GENERAL", "MACRO", "SECTOR"} {
			if !table.IsGeneral(tag) {
				t.Errorf("IsGeneral(%q) = false", tag)
			}
		}
		if table.IsGeneral("NVDA") {
			t.Error("IsGeneral(NVDA) = true")
		}
	})
}
