package booking

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

// VerifyResult is the availability verifier's answer for one candidate.
type VerifyResult struct {
	Confirmed        bool
	BookingReference string
	Reason           string
}

// Verifier performs a single verification attempt against the offer's owner.
// Retry policy lives in the orchestrator so each attempt can be audited.
type Verifier interface {
	Verify(ctx context.Context, candidateID string, details models.TripDetails) (*VerifyResult, error)
}

// HTTPVerifier implements Verifier against the verification collaborator.
type HTTPVerifier struct {
	BaseURL   string
	AuthToken string
	HTTP      *http.Client
	Logger    *zap.Logger
}

func NewHTTPVerifier(logger *zap.Logger) *HTTPVerifier {
	timeout := time.Duration(config.AppConfig.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPVerifier{
		BaseURL:   config.AppConfig.VerifierAPIURL,
		AuthToken: config.AppConfig.VerifierAPIToken,
		HTTP:      &http.Client{Timeout: timeout},
		Logger:    logger,
	}
}

type verifyRequest struct {
	CandidateID string             `json:"candidateId"`
	Details     models.TripDetails `json:"details"`
}

type verifyResponse struct {
	Confirmed        bool   `json:"confirmed"`
	BookingReference string `json:"bookingReference,omitempty"`
	Reason           string `json:"reason,omitempty"`
}

// Verify posts one verification attempt. Transport failures and 5xx answers
// come back as externalServiceError so the caller can retry; a clean
// rejection is a successful call with Confirmed=false.
func (v *HTTPVerifier) Verify(ctx context.Context, candidateID string, details models.TripDetails) (*VerifyResult, error) {
	body, err := json.Marshal(verifyRequest{CandidateID: candidateID, Details: details})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if v.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+v.AuthToken)
	}

	resp, err := v.HTTP.Do(req)
	if err != nil {
		return nil, NewExternalServiceError(fmt.Sprintf("verifier unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, NewExternalServiceError(fmt.Sprintf("verifier returned status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verifier returned status %d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, NewExternalServiceError(fmt.Sprintf("failed to decode verifier response: %v", err))
	}
	return &VerifyResult{
		Confirmed:        out.Confirmed,
		BookingReference: out.BookingReference,
		Reason:           out.Reason,
	}, nil
}

// verifyWithRetry drives bounded exponential backoff around single attempts.
// Only externalServiceError outcomes are retried; a rejection is final. Each
// failed attempt is reported through onAttempt so the audit trail carries a
// retry marker without a transition.
func (s *DefaultBookingService) verifyWithRetry(
	ctx context.Context,
	candidateID string,
	details models.TripDetails,
	onAttempt func(attempt int, err error),
) (*VerifyResult, error) {
	maxAttempts := config.AppConfig.VerifyMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	backoff := time.Duration(config.AppConfig.VerifyBackoffMs) * time.Millisecond
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := s.Verifier.Verify(ctx, candidateID, details)
		if err == nil {
			return result, nil
		}
		if ErrorCode(err) != CodeExternalService {
			return nil, err
		}
		lastErr = err
		if onAttempt != nil {
			onAttempt(attempt, err)
		}
		s.Logger.Warn("verification attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err))
		if attempt < maxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, NewExternalServiceError("verification cancelled: " + ctx.Err().Error())
			}
			backoff *= 2
		}
	}
	return nil, NewExternalServiceError(fmt.Sprintf("verification retries exhausted: %v", lastErr))
}
