// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethgrid/pester"
)

// ErrRejected means the verification service did not accept the token.
var ErrRejected = errors.New("captcha rejected")

// Verifier checks a client-supplied challenge token at login.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// NopVerifier accepts every token. Used when no secret is configured.
type NopVerifier struct{}

func (NopVerifier) Verify(context.Context, string, string) error { return nil }

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// RecaptchaVerifier calls the reCAPTCHA siteverify endpoint, retrying
// transport failures and 5xx answers.
type RecaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *pester.Client
}

func NewRecaptchaVerifier(secret, verifyURL string, timeout time.Duration) *RecaptchaVerifier {
	client := pester.NewExtendedClient(&http.Client{Timeout: timeout})
	client.MaxRetries = 3
	client.Concurrency = 1
	client.Backoff = pester.ExponentialJitterBackoff

	return &RecaptchaVerifier{
		secret:    secret,
		verifyURL: verifyURL,
		client:    client,
	}
}

// New picks the verifier for the configured secret.
func New(secret, verifyURL string) Verifier {
	if secret == "" {
		return NopVerifier{}
	}
	return NewRecaptchaVerifier(secret, verifyURL, 5*time.Second)
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		return ErrRejected
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode siteverify response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(result.ErrorCodes, ","))
	}
	return nil
}
