package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pep299/portfolio-pulse/internal/model"
	"github.com/pep299/portfolio-pulse/internal/repository"
	"github.com/pep299/portfolio-pulse/internal/service/parse"
)

// DigestOptions tunes the generation pipeline.
type DigestOptions struct {
	// PollInterval and PollAttempts bound the wait for the remote job. The
	// API returns no job id, so readiness is inferred from the object
	// library instead of confirmed.
	PollInterval     time.Duration
	PollAttempts     int
	MinContentLength int
}

// Digest runs the generation pipeline: trigger the remote job, poll for the
// resulting document, resolve its content to text, parse it into cards, and
// prepend the digest to history.
type Digest struct {
	generation repository.GenerationRepository
	documents  repository.DocumentRepository
	store      repository.Store
	notifier   repository.Notifier
	portfolio  *Portfolio
	parser     *parse.Parser
	opts       DigestOptions

	inFlight atomic.Bool
	now      func() time.Time
}

func NewDigest(
	generation repository.GenerationRepository,
	documents repository.DocumentRepository,
	store repository.Store,
	notifier repository.Notifier,
	portfolio *Portfolio,
	opts DigestOptions,
) *Digest {
	return &Digest{
		generation: generation,
		documents:  documents,
		store:      store,
		notifier:   notifier,
		portfolio:  portfolio,
		parser:     parse.NewParser(),
		opts:       opts,
		now:        time.Now,
	}
}

// Generate runs one full generation cycle. At most one cycle runs at a time;
// concurrent calls get ErrGenerationInFlight. On any failure the digest
// history is left untouched, so the previously rendered digest stays visible.
func (d *Digest) Generate(ctx context.Context) (*model.Digest, error) {
	portfolio, err := d.portfolio.Current(ctx)
	if err != nil {
		return nil, err
	}

	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer d.inFlight.Store(false)

	triggeredAt := d.now()
	log.Printf("Triggering digest generation for %d holdings", len(portfolio.Holdings))
	if err := d.generation.Trigger(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("triggering generation: %w", err)
	}

	doc, err := d.awaitDocument(ctx, triggeredAt)
	if err != nil {
		return nil, err
	}
	log.Printf("Digest document ready: %s", doc.Name)

	content, err := d.documents.FetchContent(ctx, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("fetching digest content: %w", err)
	}
	if len(strings.TrimSpace(content)) < d.opts.MinContentLength {
		return nil, fmt.Errorf("document %s: %w", doc.Name, ErrContentTooShort)
	}

	digest := d.buildDigest(doc, content)
	log.Printf("Parsed digest %s: %d cards", digest.ID, len(digest.Cards))

	if err := d.appendHistory(ctx, digest); err != nil {
		return nil, err
	}

	if err := d.notifier.SendDigest(ctx, digest); err != nil {
		// Notification failure never fails the pipeline.
		log.Printf("Digest notification failed: %v", err)
	}

	return digest, nil
}

// awaitDocument polls the object library until a digest document at least as
// new as the trigger appears, within the configured attempt budget.
func (d *Digest) awaitDocument(ctx context.Context, triggeredAt time.Time) (model.DocumentMeta, error) {
	// Library timestamps come from another clock; give them a minute of skew.
	cutoff := triggeredAt.Add(-time.Minute)
	sawAny := false

	for attempt := 0; attempt < d.opts.PollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return model.DocumentMeta{}, ctx.Err()
		case <-time.After(d.opts.PollInterval):
		}

		docs, err := d.documents.ListDocuments(ctx)
		if err != nil {
			return model.DocumentMeta{}, fmt.Errorf("listing documents: %w", err)
		}

		doc, ok := NewestDigestDocument(docs)
		if !ok {
			continue
		}
		sawAny = true
		if !doc.Timestamp().Before(cutoff) {
			return doc, nil
		}
	}

	if !sawAny {
		return model.DocumentMeta{}, ErrNoDigestDocument
	}
	return model.DocumentMeta{}, ErrGenerationTimeout
}

// NewestDigestDocument selects, among documents with "digest" in name or
// title, the one with the most recent timestamp.
func NewestDigestDocument(docs []model.DocumentMeta) (model.DocumentMeta, bool) {
	var newest model.DocumentMeta
	found := false
	for _, doc := range docs {
		name := strings.ToLower(doc.Name)
		title := strings.ToLower(doc.Title)
		if !strings.Contains(name, "digest") && !strings.Contains(title, "digest") {
			continue
		}
		if !found || doc.Timestamp().After(newest.Timestamp()) {
			newest = doc
			found = true
		}
	}
	return newest, found
}

func (d *Digest) buildDigest(doc model.DocumentMeta, content string) *model.Digest {
	generatedAt := d.now()
	label := TimeLabel(generatedAt.Hour())

	title := doc.Title
	if title == "" {
		title = d.parser.DocumentTitle(content, label+" Portfolio Digest")
	}

	return &model.Digest{
		ID:          uuid.NewString(),
		Title:       title,
		TimeLabel:   label,
		GeneratedAt: generatedAt,
		Cards:       d.parser.ParseCards(content),
	}
}

// History returns the persisted digest history, most recent first.
func (d *Digest) History(ctx context.Context) ([]model.Digest, error) {
	data, err := d.store.Get(ctx, repository.KeyDigestHistory)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading digest history: %w", err)
	}

	var history []model.Digest
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decoding digest history: %w", err)
	}
	return history, nil
}

// Latest returns the most recent digest, or nil when none exists.
func (d *Digest) Latest(ctx context.Context) (*model.Digest, error) {
	history, err := d.History(ctx)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[0], nil
}

// GroupedView merges a digest's cards by ticker for the grouped display mode.
func (d *Digest) GroupedView(digest *model.Digest) []parse.Group {
	return parse.AggregateGrouped(digest.Cards, d.parser.Tickers())
}

func (d *Digest) appendHistory(ctx context.Context, digest *model.Digest) error {
	history, err := d.History(ctx)
	if err != nil {
		return err
	}

	history = append([]model.Digest{*digest}, history...)
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling digest history: %w", err)
	}
	if err := d.store.Set(ctx, repository.KeyDigestHistory, data); err != nil {
		return fmt.Errorf("saving digest history: %w", err)
	}
	return nil
}

// TimeLabel names the time of day for digest titles.
func TimeLabel(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}
