// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package captcha verifies login challenge tokens against Google reCAPTCHA.
//
// An empty RECAPTCHA_SECRET_KEY selects NopVerifier, which is what local
// development and the tests use.
package captcha
