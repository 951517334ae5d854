package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freightbook/config"
	"freightbook/models"

	"go.uber.org/zap"
)

// Client queries the external search capability for offers matching a route.
type Client interface {
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Candidate, error)
}

// HTTPClient implements Client against the catalog collaborator's REST API.
type HTTPClient struct {
	BaseURL   string
	AuthToken string
	HTTP      *http.Client
	Logger    *zap.Logger
}

func NewHTTPClient(logger *zap.Logger) *HTTPClient {
	timeout := time.Duration(config.AppConfig.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		BaseURL:   config.AppConfig.CatalogAPIURL,
		AuthToken: config.AppConfig.CatalogAPIToken,
		HTTP:      &http.Client{Timeout: timeout},
		Logger:    logger,
	}
}

type searchResponse struct {
	Candidates []models.Candidate `json:"candidates"`
}

// Search posts the criteria to the catalog and returns the raw candidate
// list. An empty list is a valid outcome, not an error.
func (c *HTTPClient) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Candidate, error) {
	if err := ValidateCriteria(criteria); err != nil {
		return nil, err
	}

	body, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search criteria: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug("catalog search",
		zap.String("origin", criteria.Origin),
		zap.String("destination", criteria.Destination),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search returned status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return out.Candidates, nil
}

// ValidateCriteria enforces the search precondition: origin, destination, and
// a non-empty date window.
func ValidateCriteria(criteria models.SearchCriteria) error {
	if criteria.Origin == "" {
		return fmt.Errorf("search criteria missing origin")
	}
	if criteria.Destination == "" {
		return fmt.Errorf("search criteria missing destination")
	}
	if criteria.WindowStart == "" || criteria.WindowEnd == "" {
		return fmt.Errorf("search criteria missing date window")
	}
	return nil
}
