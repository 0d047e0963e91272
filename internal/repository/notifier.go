package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pep299/portfolio-pulse/internal/model"
)

// Notifier announces a completed digest.
type Notifier interface {
	SendDigest(ctx context.Context, digest *model.Digest) error
}

// SlackNotifier posts digest summaries via chat.postMessage.
type SlackNotifier struct {
	botToken   string
	channel    string
	httpClient *http.Client
}

func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	return &SlackNotifier{
		botToken: botToken,
		channel:  channel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatPostMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type chatPostMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (n *SlackNotifier) SendDigest(ctx context.Context, digest *model.Digest) error {
	message := n.formatDigestMessage(digest)

	body, err := json.Marshal(chatPostMessageRequest{
		Channel: n.channel,
		Text:    message,
	})
	if err != nil {
		return fmt.Errorf("marshaling Slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://slack.com/api/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating Slack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending Slack message: %w", err)
	}
	defer resp.Body.Close()

	var result chatPostMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding Slack response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("slack API error: %s", result.Error)
	}
	return nil
}

func (n *SlackNotifier) formatDigestMessage(digest *model.Digest) string {
	return fmt.Sprintf(`*%s*
%s Digest - %d cards
Generated: %s`,
		digest.Title,
		digest.TimeLabel,
		len(digest.Cards),
		digest.GeneratedAt.Format("2006-01-02 15:04:05"))
}

// NoopNotifier is used when no Slack token is configured.
type NoopNotifier struct{}

func (NoopNotifier) SendDigest(ctx context.Context, digest *model.Digest) error {
	return nil
}
