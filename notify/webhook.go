// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/danielhkuo/namepair/models"
)

// Webhook POSTs events as JSON to participants whose address is an
// http(s) URL. Other addresses are skipped.
type Webhook struct {
	client *http.Client
}

func NewWebhook(timeout time.Duration) *Webhook {
	return &Webhook{client: &http.Client{Timeout: timeout}}
}

func (w *Webhook) Notify(ctx context.Context, p models.Participant, ev models.Event) error {
	target, ok := webhookURL(p.Address)
	if !ok {
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Participant-ID", p.ID)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery to %s failed: %w", p.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook delivery to %s failed: status %d", p.ID, resp.StatusCode)
	}
	return nil
}

func webhookURL(address *string) (string, bool) {
	if address == nil || *address == "" {
		return "", false
	}
	u, err := url.Parse(*address)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}
