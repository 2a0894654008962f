// Package leads submits completed collections to an external CRM endpoint.
package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vox/internal/domain"
)

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.endpoint != ""
}

// Submit posts the lead as JSON. Any transport error or non-2xx status is a
// failed submission; the caller keeps the collected values and may retry.
func (c *Client) Submit(ctx context.Context, rec *domain.LeadRecord) error {
	if !c.Enabled() {
		return fmt.Errorf("lead endpoint is not configured")
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status=%d body=%s", domain.ErrSubmissionFailed, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// NopSubmitter accepts every lead without calling anywhere. Used when no
// external endpoint is configured; the store still keeps the record.
type NopSubmitter struct{}

func (NopSubmitter) Submit(context.Context, *domain.LeadRecord) error { return nil }
