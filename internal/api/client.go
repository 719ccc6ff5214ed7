// Package api is the HTTP client for the Tarion backend. The backend is
// external; only its JSON interface is modeled here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tarion/internal/auth"
	"tarion/internal/events"

	"go.uber.org/zap"
)

// Doer is the single HTTP capability the client needs, chosen once at
// composition time.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Tarion REST API with bearer auth and a single
// refresh-and-retry on 401.
type Client struct {
	http    Doer
	baseURL string
	store   auth.Store
	bus     *events.Bus
	logger  *zap.Logger
}

func NewClient(httpClient Doer, baseURL string, store auth.Store, bus *events.Bus, logger *zap.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		bus:     bus,
		logger:  logger,
	}
}

// Quota fetches the current spread allowance.
func (c *Client) Quota(ctx context.Context) (Quota, error) {
	var q Quota
	if err := c.do(ctx, http.MethodGet, "/api/vd/quota/", nil, &q); err != nil {
		return Quota{}, err
	}
	return q, nil
}

// StartSpread charges one quota unit and registers a spread.
func (c *Client) StartSpread(ctx context.Context, req StartSpreadRequest) (StartSpreadResult, error) {
	var res StartSpreadResult
	if err := c.do(ctx, http.MethodPost, "/api/vd/spreads/start/", req, &res); err != nil {
		return StartSpreadResult{}, err
	}
	return res, nil
}

// CompleteSpread reports the end of a started spread.
func (c *Client) CompleteSpread(ctx context.Context, req CompleteSpreadRequest) error {
	return c.do(ctx, http.MethodPost, "/api/vd/spreads/complete/", req, nil)
}

// CompleteSpreadBeacon fires CompleteSpread on a detached goroutine with
// its own deadline. Nothing is awaited; suitable for shutdown paths.
func (c *Client) CompleteSpreadBeacon(req CompleteSpreadRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.CompleteSpread(ctx, req); err != nil {
			c.logger.Debug("complete-spread beacon failed", zap.Error(err))
		}
	}()
}

// do runs one JSON request with bearer auth. A 401 triggers one token
// refresh and one retry; a second 401 (or a 403) is ErrUnauthorized.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	status, body, err := c.roundTrip(ctx, method, path, in)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && c.store.Tokens().Refresh != "" {
		if err := c.refresh(ctx); err != nil {
			return err
		}
		status, body, err = c.roundTrip(ctx, method, path, in)
		if err != nil {
			return err
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return ErrQuotaExhausted
	case status == http.StatusPreconditionRequired:
		return ErrLoginPending
	case status < 200 || status > 299:
		return fmt.Errorf("%s %s: status %d: %s", method, path, status, strings.TrimSpace(string(body)))
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if access := c.store.Tokens().Access; access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// refresh exchanges the refresh token for a new access token. Any failure
// clears the stored session; the user must log in again.
func (c *Client) refresh(ctx context.Context) error {
	payload := map[string]string{"refresh": c.store.Tokens().Refresh}
	status, body, err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh/", payload)
	if err == nil && status >= 200 && status <= 299 {
		var res struct {
			Access string `json:"access"`
		}
		if derr := json.Unmarshal(body, &res); derr == nil && res.Access != "" {
			t := c.store.Tokens()
			t.Access = res.Access
			c.store.SetTokens(t)
			c.bus.Publish(events.AuthRefresh, nil)
			return nil
		}
	}

	c.logger.Warn("token refresh failed, clearing session",
		zap.Int("status", status), zap.Error(err))
	c.store.Clear()
	c.bus.Publish(events.AuthLogout, nil)
	return ErrUnauthorized
}
