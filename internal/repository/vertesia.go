package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pep299/portfolio-pulse/internal/model"
)

// GenerationRepository triggers the remote digest generation job. The API is
// fire-and-forget: no job id comes back, readiness is inferred by polling the
// object library.
type GenerationRepository interface {
	Trigger(ctx context.Context, portfolio *model.Portfolio) error
}

// DocumentRepository lists the remote object library and resolves document
// content to text.
type DocumentRepository interface {
	ListDocuments(ctx context.Context) ([]model.DocumentMeta, error)
	FetchContent(ctx context.Context, ref model.ContentRef) (string, error)
}

// VertesiaOptions carries the generation request parameters.
type VertesiaOptions struct {
	BaseURL          string
	APIKey           string
	EnvironmentID    string
	Model            string
	InteractionName  string
	LookbackDays     int
	PriorityExposure float64
}

// VertesiaClient handles Vertesia API operations. Implements both
// GenerationRepository and DocumentRepository.
type VertesiaClient struct {
	opts       VertesiaOptions
	httpClient *http.Client
	extractor  PDFExtractor
	now        func() time.Time
}

// NewVertesiaClient creates a new Vertesia API client
func NewVertesiaClient(opts VertesiaOptions, extractor PDFExtractor) *VertesiaClient {
	return &VertesiaClient{
		opts:      opts,
		extractor: extractor,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		now: time.Now,
	}
}

type executeRequest struct {
	Type        string            `json:"type"`
	Interaction string            `json:"interaction"`
	Data        map[string]string `json:"data"`
	Config      executeConfig     `json:"config"`
}

type executeConfig struct {
	Environment string `json:"environment"`
	Model       string `json:"model"`
}

// Trigger starts an asynchronous digest generation run for the portfolio.
func (c *VertesiaClient) Trigger(ctx context.Context, portfolio *model.Portfolio) error {
	req := executeRequest{
		Type:        "conversation",
		Interaction: c.opts.InteractionName,
		Data: map[string]string{
			"task": c.buildPrompt(portfolio),
		},
		Config: executeConfig{
			Environment: c.opts.EnvironmentID,
			Model:       c.opts.Model,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling trigger request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.opts.BaseURL+"/execute/async", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating trigger request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("triggering generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("triggering generation: status %d", resp.StatusCode)
	}
	return nil
}

// buildPrompt serializes the portfolio into the generation task. Holdings are
// listed by exposure descending so coverage depth follows portfolio weight.
func (c *VertesiaClient) buildPrompt(portfolio *model.Portfolio) string {
	holdings := make([]model.Holding, len(portfolio.Holdings))
	copy(holdings, portfolio.Holdings)
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].Exposure > holdings[j].Exposure
	})

	var lines []string
	for _, h := range holdings {
		lines = append(lines, fmt.Sprintf("%s (%.1f%% of portfolio, %g shares)", h.Ticker, h.Exposure, h.Quantity))
	}

	today := c.now()
	return fmt.Sprintf(`Generate a portfolio news digest for the following holdings:

%s

Portfolio Total Value: $%.2f

Research Parameters:
- Time window: Last %d days only (from %s)
- Focus areas: Earnings, regulatory changes, product launches, M&A activity, analyst ratings, executive moves, material operational updates
- Tone: Professional, factual, investor-focused. No sensationalism, no emoji, no exaggeration
- Exposure weighting: Prioritize coverage depth based on portfolio exposure percentage (positions >%.0f%% deserve more detail)

For each ticker with relevant news, give one headline, 2-4 bullet points with specific facts, and source citations with article titles and URLs under a "Sources:" label. Finish with an overall digest title capturing the main portfolio themes.

Today's date: %s`,
		strings.Join(lines, "\n"),
		portfolio.TotalValue,
		c.opts.LookbackDays,
		today.Format("2006-01-02"),
		c.opts.PriorityExposure,
		today.Format("2006-01-02"))
}

// documentObject is the wire shape of one object library entry. The API has
// shipped several content shapes; text may be inline or behind a download URL.
type documentObject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	Text       string `json:"text"`
	ContentURL string `json:"content_url"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
}

// ListDocuments returns the remote object library, newest first.
func (c *VertesiaClient) ListDocuments(ctx context.Context) ([]model.DocumentMeta, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.opts.BaseURL+"/objects", nil)
	if err != nil {
		return nil, fmt.Errorf("creating list request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing documents: status %d", resp.StatusCode)
	}

	var objects []documentObject
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("decoding document list: %w", err)
	}

	docs := make([]model.DocumentMeta, 0, len(objects))
	for _, obj := range objects {
		docs = append(docs, c.toDocumentMeta(obj))
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Timestamp().After(docs[j].Timestamp())
	})
	return docs, nil
}

func (c *VertesiaClient) toDocumentMeta(obj documentObject) model.DocumentMeta {
	doc := model.DocumentMeta{
		ID:       obj.ID,
		Name:     obj.Name,
		Title:    obj.Properties.Title,
		MimeType: obj.MimeType,
	}
	if t, err := time.Parse(time.RFC3339, obj.CreatedAt); err == nil {
		doc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, obj.UpdatedAt); err == nil {
		doc.UpdatedAt = t
	}
	switch {
	case obj.Text != "":
		doc.Content = model.InlineRef(obj.Text)
	case obj.ContentURL != "":
		doc.Content = model.RemoteRef(obj.ContentURL)
	default:
		doc.Content = model.RemoteRef(c.opts.BaseURL + "/objects/" + obj.ID + "/content")
	}
	return doc
}

// FetchContent resolves a content ref to text. Remote PDF payloads are run
// through the PDF extractor before returning.
func (c *VertesiaClient) FetchContent(ctx context.Context, ref model.ContentRef) (string, error) {
	switch ref.Kind {
	case model.ContentInline:
		return ref.Text, nil
	case model.ContentRemote:
		// handled below
	default:
		return "", fmt.Errorf("fetching content: unknown content kind %q", ref.Kind)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", ref.URI, nil)
	if err != nil {
		return "", fmt.Errorf("creating content request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("downloading content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading content: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}

	if isPDF(resp.Header.Get("Content-Type"), data) {
		text, err := c.extractor.ExtractTextFromBytes(ctx, data)
		if err != nil {
			return "", fmt.Errorf("extracting PDF text: %w", err)
		}
		return text, nil
	}

	return string(data), nil
}

func isPDF(contentType string, data []byte) bool {
	if strings.Contains(contentType, "application/pdf") {
		return true
	}
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func (c *VertesiaClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
}
