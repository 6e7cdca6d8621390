// Package notify delivers run output to a Telegram chat. Delivery is
// best-effort: one retry per message, then the message is dropped and
// logged. Nothing in this package ever fails a run.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	BotToken string
	ChatID   string

	// APIBase defaults to the public bot API; tests point it elsewhere.
	APIBase string

	Timeout           time.Duration // per HTTP attempt
	RetryDelay        time.Duration // between the two attempts
	MessagesPerSecond float64
}

type Telegram struct {
	cfg     Config
	hc      *http.Client
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

func New(cfg Config, logger *zap.SugaredLogger) *Telegram {
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.telegram.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if cfg.MessagesPerSecond <= 0 {
		cfg.MessagesPerSecond = 1.0
	}
	return &Telegram{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.MessagesPerSecond), 1),
		logger:  logger,
	}
}

type sendMessageBody struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send delivers one Markdown message to the configured chat. Retries once
// after a fixed delay; a second failure drops the message. Never panics,
// never returns an error: the bool is the whole outcome.
func (t *Telegram) Send(ctx context.Context, text string) bool {
	for attempt := 0; attempt < 2; attempt++ {
		if err := t.limiter.Wait(ctx); err != nil {
			t.logger.Errorw("telegram send aborted", "err", err)
			return false
		}

		err := t.post(ctx, text)
		if err == nil {
			return true
		}

		if attempt == 0 {
			t.logger.Warnw("telegram send failed, retrying",
				"delay", t.cfg.RetryDelay, "err", err)
			select {
			case <-time.After(t.cfg.RetryDelay):
			case <-ctx.Done():
				t.logger.Errorw("telegram retry aborted", "err", ctx.Err())
				return false
			}
		} else {
			t.logger.Errorw("telegram send failed after retry, message dropped", "err", err)
		}
	}
	return false
}

func (t *Telegram) post(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageBody{
		ChatID:                t.cfg.ChatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("telegram encode: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.APIBase, t.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.hc.Do(req)
	if err != nil {
		return fmt.Errorf("telegram post: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("telegram status %d", res.StatusCode)
	}
	return nil
}
