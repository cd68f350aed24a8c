package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

// WebhookNotifier sends messages to Slack via an incoming webhook.
type WebhookNotifier struct {
	WebhookURL string
	Client     *http.Client
}

// NewWebhookNotifier creates a webhook-backed notifier.
func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify posts a message to the configured webhook.
func (s *WebhookNotifier) Notify(ctx context.Context, message string) error {
	if s.WebhookURL == "" {
		return fmt.Errorf("slack webhook URL is not configured")
	}

	payload := map[string]string{
		"text": message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack notification failed with status: %s", resp.Status)
	}

	return nil
}

// BotNotifier sends messages through the Slack Web API with a bot token.
// Unlike a webhook it can target any channel the bot is a member of.
type BotNotifier struct {
	client    *slack.Client
	channelID string
}

// NewBotNotifier creates a bot-token-backed notifier.
func NewBotNotifier(botToken, channelID string) *BotNotifier {
	return &BotNotifier{
		client:    slack.New(botToken),
		channelID: channelID,
	}
}

// Notify posts a message to the configured channel.
func (b *BotNotifier) Notify(ctx context.Context, message string) error {
	if b.channelID == "" {
		return fmt.Errorf("slack channel is not configured")
	}
	_, _, err := b.client.PostMessageContext(ctx, b.channelID,
		slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("failed to post slack message: %w", err)
	}
	return nil
}

// FromConfig builds a notifier from viper configuration. The bot token is
// read from the environment rather than config so it never lands in a
// checked-in file. Returns nil when slack notifications are disabled or
// unconfigured.
func FromConfig() Notifier {
	if !viper.GetBool("notifications.slack.enabled") {
		return nil
	}

	if token := os.Getenv("SLACK_BOT_USER_TOKEN"); token != "" {
		return NewBotNotifier(token, viper.GetString("notifications.slack.channel"))
	}
	if url := viper.GetString("notifications.slack.webhook_url"); url != "" {
		return NewWebhookNotifier(url)
	}
	return nil
}
