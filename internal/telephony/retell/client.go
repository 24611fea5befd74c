package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/acme/voice-call-runner/internal/config"
	"github.com/acme/voice-call-runner/internal/domain"
	"github.com/acme/voice-call-runner/internal/telephony"
	apperrors "github.com/acme/voice-call-runner/pkg/errors"
)

// Client talks to the vendor's v2 call API over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ telephony.Provider = (*Client)(nil)

// NewClient constructs a provider client from configuration.
func NewClient(cfg config.ProviderConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// CreatePhoneCall places an outbound call.
func (c *Client) CreatePhoneCall(ctx context.Context, req domain.CallRequest) (domain.CallHandle, error) {
	var snap domain.CallStatusSnapshot
	if err := c.do(ctx, http.MethodPost, "/v2/create-phone-call", req, &snap); err != nil {
		return domain.CallHandle{}, err
	}
	return domain.CallHandle{CallID: snap.CallID}, nil
}

// RetrieveCall reads the current call snapshot.
func (c *Client) RetrieveCall(ctx context.Context, callID string) (*domain.CallStatusSnapshot, error) {
	snap := new(domain.CallStatusSnapshot)
	if err := c.do(ctx, http.MethodGet, "/v2/get-call/"+callID, nil, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// UpdateCall patches the remote call record.
func (c *Client) UpdateCall(ctx context.Context, callID string, metadata map[string]any, optOutSensitiveDataStorage bool) (*domain.CallStatusSnapshot, error) {
	body := updateCallRequest{
		Metadata:                   metadata,
		OptOutSensitiveDataStorage: optOutSensitiveDataStorage,
	}
	snap := new(domain.CallStatusSnapshot)
	if err := c.do(ctx, http.MethodPatch, "/v2/update-call/"+callID, body, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

type updateCallRequest struct {
	Metadata                   map[string]any `json:"metadata"`
	OptOutSensitiveDataStorage bool           `json:"opt_out_sensitive_data_storage"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("retell: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("retell: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("retell: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("retell: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	msg := strings.TrimSpace(string(detail))
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, msg)
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", apperrors.ErrQuotaExceeded, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", apperrors.ErrUnavailable, resp.StatusCode, msg)
	}
}
