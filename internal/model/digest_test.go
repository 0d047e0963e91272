package model

import (
	"testing"
	"time"
)

func TestCardsByCategory(t *testing.T) {
	digest := &Digest{
		Cards: []Card{
			{Title: "a", Category: CategoryNews},
			{Title: "b", Category: CategoryOpportunity},
			{Title: "c", Category: CategoryNews},
		},
	}

	view := digest.CardsByCategory()
	if len(view[CategoryNews]) != 2 {
		t.Errorf("news cards = %d, want 2", len(view[CategoryNews]))
	}
	if len(view[CategoryOpportunity]) != 1 {
		t.Errorf("opportunity cards = %d, want 1", len(view[CategoryOpportunity]))
	}
	if view[CategoryNews][0].Title != "a" || view[CategoryNews][1].Title != "c" {
		t.Error("card order not preserved within category")
	}
}

func TestDocumentTimestamp(t *testing.T) {
	created := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	doc := DocumentMeta{CreatedAt: created, UpdatedAt: updated}
	if !doc.Timestamp().Equal(updated) {
		t.Errorf("Timestamp = %v, want updated", doc.Timestamp())
	}

	doc = DocumentMeta{CreatedAt: updated, UpdatedAt: created}
	if !doc.Timestamp().Equal(updated) {
		t.Errorf("Timestamp = %v, want created", doc.Timestamp())
	}
}

func TestHasHoldings(t *testing.T) {
	var nilPortfolio *Portfolio
	if nilPortfolio.HasHoldings() {
		t.Error("nil portfolio reports holdings")
	}
	if (&Portfolio{}).HasHoldings() {
		t.Error("empty portfolio reports holdings")
	}
	if !(&Portfolio{Holdings: []Holding{{Ticker: "NVDA"}}}).HasHoldings() {
		t.Error("populated portfolio reports no holdings")
	}
}

func TestContentRefConstructors(t *testing.T) {
	inline := InlineRef("text body")
	if inline.Kind != ContentInline || inline.Text != "text body" || inline.URI != "" {
		t.Errorf("InlineRef = %+v", inline)
	}

	remote := RemoteRef("https://files.example.com/doc")
	if remote.Kind != ContentRemote || remote.URI != "https://files.example.com/doc" || remote.Text != "" {
		t.Errorf("RemoteRef = %+v", remote)
	}
}
