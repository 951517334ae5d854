package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freightbook/config"
)

// Checker is the external verification collaborator judging format and
// authenticity of an uploaded document.
type Checker interface {
	Check(ctx context.Context, recordID string) (verified bool, notes string, err error)
}

// HTTPChecker implements Checker against the document check REST API.
type HTTPChecker struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPChecker() *HTTPChecker {
	timeout := time.Duration(config.AppConfig.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPChecker{
		BaseURL: config.AppConfig.DocCheckAPIURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type checkResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

func (c *HTTPChecker) Check(ctx context.Context, recordID string) (bool, string, error) {
	body, err := json.Marshal(map[string]string{"recordId": recordID})
	if err != nil {
		return false, "", fmt.Errorf("failed to marshal check request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return false, "", fmt.Errorf("failed to build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("document check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("document check returned status %d", resp.StatusCode)
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, "", fmt.Errorf("failed to decode check response: %w", err)
	}
	return out.Verified, out.Reason, nil
}
