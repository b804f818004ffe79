package applicationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/pkg/logger"
)

const (
	// DefaultTimeout applies when the config leaves Timeout unset
	DefaultTimeout = 10 * time.Second

	userIDHeader    = "X-User-ID"
	requestIDHeader = "X-Request-ID"
)

// Client talks to the HTTP Application API on behalf of a user
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for cfg.BaseURL, e.g. http://host/api/v1
func NewClient(cfg config.ApplicationAPIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type applicationEnvelope struct {
	Application *entities.Application `json:"application"`
}

type applicationListEnvelope struct {
	Applications []*entities.Application `json:"applications"`
	Count        int                     `json:"count"`
}

// ListByUser returns the user's applications, optionally narrowed to status
func (c *Client) ListByUser(ctx context.Context, userID string, status entities.ApplicationStatus) ([]*entities.Application, error) {
	endpoint := "/applications/user"
	if status != "" {
		endpoint += "?" + url.Values{"status": {string(status)}}.Encode()
	}

	var out applicationListEnvelope
	if err := c.do(ctx, http.MethodGet, endpoint, userID, nil, &out); err != nil {
		return nil, err
	}
	if out.Applications == nil {
		out.Applications = []*entities.Application{}
	}
	return out.Applications, nil
}

// Get fetches one of the user's applications
func (c *Client) Get(ctx context.Context, userID, id string) (*entities.Application, error) {
	var out applicationEnvelope
	if err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id), userID, nil, &out); err != nil {
		return nil, err
	}
	return out.Application, nil
}

// Create submits a new application
func (c *Client) Create(ctx context.Context, userID string, input *entities.ApplicationCreateInput) (*entities.Application, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("application payload is required")
	}
	var out applicationEnvelope
	if err := c.do(ctx, http.MethodPost, "/applications", userID, input, &out); err != nil {
		return nil, err
	}
	return out.Application, nil
}

// Update merges fields into one of the user's applications
func (c *Client) Update(ctx context.Context, userID, id string, fields map[string]interface{}) (*entities.Application, error) {
	if len(fields) == 0 {
		return nil, domainerrors.BadRequest("no fields to update")
	}
	var out applicationEnvelope
	if err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id), userID, fields, &out); err != nil {
		return nil, err
	}
	return out.Application, nil
}

// UpdateStatus moves one of the user's applications to a new status
func (c *Client) UpdateStatus(ctx context.Context, userID, id string, input *entities.ApplicationStatusInput) (*entities.Application, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("status payload is required")
	}
	var out applicationEnvelope
	if err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id)+"/status", userID, input, &out); err != nil {
		return nil, err
	}
	return out.Application, nil
}

// Delete removes one of the user's applications
func (c *Client) Delete(ctx context.Context, userID, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), userID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint, userID string, body, result interface{}) error {
	if userID == "" {
		return domainerrors.Unauthorized("missing user identity")
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return domainerrors.BadRequest("failed to encode request body")
		}
		payload = data
	}

	if err := c.roundTrip(ctx, method, endpoint, userID, payload, result); err != nil {
		return c.fail(ctx, method, endpoint, err)
	}
	return nil
}

// roundTrip performs exactly one request. Failures are never retried.
func (c *Client) roundTrip(ctx context.Context, method, endpoint, userID string, payload []byte, result interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return domainerrors.InternalError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(userIDHeader, userID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok && reqID != "" {
		req.Header.Set(requestIDHeader, reqID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.BackendUnavailable(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.BackendUnavailable(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return domainerrors.InternalError(fmt.Errorf("failed to decode response: %w", err))
		}
	}
	return nil
}

func (c *Client) fail(ctx context.Context, method, endpoint string, err error) error {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Error(err),
	}
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
		logger.Warn(ctx, "Application API request rejected", append(fields, zap.String("code", appErr.Code))...)
	} else {
		logger.Error(ctx, "Application API request failed", fields...)
	}
	return err
}
