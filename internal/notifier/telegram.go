// Package notifier submits reminder messages to the external messaging
// gateway. Delivery is observed, never retried.
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"habitflow/pkg/config"
)

// Notifier accepts a destination and text and reports the gateway status.
type Notifier interface {
	Send(ctx context.Context, chatID, text string) (int, error)
}

// Message renders the reminder text for a habit.
func Message(action, timeStr, place string) string {
	return fmt.Sprintf("I will be doing %s at %s at %s", action, timeStr, place)
}

const defaultAPIBase = "https://api.telegram.org"

// Telegram posts messages through the bot sendMessage endpoint.
type Telegram struct {
	token   string
	apiBase string
	client  *http.Client
	logger  *zap.Logger
}

func NewTelegram(cfg config.TelegramConfig, logger *zap.Logger) *Telegram {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Telegram{
		token:   cfg.Token,
		apiBase: apiBase,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Send submits the message and returns the gateway's HTTP status code. The
// error is non-nil only for transport failures; a non-2xx status is the
// caller's signal to observe, not retry.
func (t *Telegram) Send(ctx context.Context, chatID, text string) (int, error) {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)

	params := url.Values{}
	params.Set("chat_id", chatID)
	params.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	t.logger.Info("Telegram message submitted",
		zap.String("chat_id", chatID),
		zap.Int("status_code", resp.StatusCode),
	)
	return resp.StatusCode, nil
}
