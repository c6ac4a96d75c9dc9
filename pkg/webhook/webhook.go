// Package webhook delivers best-effort JSON notifications to external
// automation endpoints (n8n and the like). Delivery failures are for the
// caller to log; they must never block or roll back the data mutation that
// triggered them.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultSyncURL receives expense writes when the user has not configured
// their own sync webhook.
const DefaultSyncURL = "https://n8n.mystoredigital.cloud/webhook/sync-expense-calendar"

// Notifier posts a JSON payload to an external automation endpoint.
type Notifier interface {
	Notify(url string, payload any) error
}

// HTTPNotifier is the production Notifier.
type HTTPNotifier struct {
	client *http.Client
}

func NewHTTPNotifier() *HTTPNotifier {
	return &HTTPNotifier{client: &http.Client{Timeout: 15 * time.Second}}
}

// Notify POSTs payload as JSON. The response body is discarded; any non-2xx
// status is reported as an error.
func (n *HTTPNotifier) Notify(url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
