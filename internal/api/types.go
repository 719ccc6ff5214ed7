package api

import "time"

// Quota is the server-owned spread allowance. The client holds a
// read-only copy.
type Quota struct {
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	Period       string    `json:"period"`
	PeriodEndsAt time.Time `json:"period_ends_at"`
}

// StartSpreadRequest is the metadata sent when charging a spread.
type StartSpreadRequest struct {
	Spread    string `json:"spread"`
	DeckID    string `json:"deck_id"`
	Lang      string `json:"lang"`
	ClientRef string `json:"client_ref"`
}

// StartSpreadResult carries the charged spread's identity and the
// post-charge quota.
type StartSpreadResult struct {
	SpreadID string `json:"spread_id"`
	Quota    Quota  `json:"quota"`
}

// CompleteSpreadRequest reports a definite end for a started spread.
type CompleteSpreadRequest struct {
	SpreadID string `json:"spread_id"`
	Outcome  string `json:"outcome"` // cleared | changed | interpreted | abandoned
	Drawn    int    `json:"drawn"`
}

// DeviceLogin is the response to a device-login initiation.
type DeviceLogin struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURL string `json:"verification_url"`
	IntervalSec     int    `json:"interval"`
}

// DeviceTokens is the response once the user approves the device login.
type DeviceTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Profile struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"profile"`
}
