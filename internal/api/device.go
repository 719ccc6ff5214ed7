package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tarion/internal/auth"
	"tarion/internal/events"
)

// StartDeviceLogin asks the backend for a device code the user approves
// in a browser.
func (c *Client) StartDeviceLogin(ctx context.Context) (DeviceLogin, error) {
	var dl DeviceLogin
	if err := c.do(ctx, http.MethodPost, "/api/auth/device/", nil, &dl); err != nil {
		return DeviceLogin{}, err
	}
	if dl.IntervalSec <= 0 {
		dl.IntervalSec = 5
	}
	return dl, nil
}

// PollDeviceLogin polls until the user approves the device code, the
// code is rejected, or ctx ends. On success the session store is filled
// and a login event is published.
func (c *Client) PollDeviceLogin(ctx context.Context, dl DeviceLogin) error {
	ticker := time.NewTicker(time.Duration(dl.IntervalSec) * time.Second)
	defer ticker.Stop()

	for {
		var tokens DeviceTokens
		err := c.do(ctx, http.MethodPost, "/api/auth/device/token/",
			map[string]string{"device_code": dl.DeviceCode}, &tokens)
		switch {
		case err == nil:
			c.store.SetTokens(auth.Tokens{Access: tokens.Access, Refresh: tokens.Refresh})
			c.store.SetProfile(auth.Profile{
				ID:    tokens.Profile.ID,
				Email: tokens.Profile.Email,
				Name:  tokens.Profile.Name,
			})
			c.bus.Publish(events.AuthLogin, tokens.Profile.ID)
			return nil
		case errors.Is(err, ErrLoginPending):
			// keep polling
		default:
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
