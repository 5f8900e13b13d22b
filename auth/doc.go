// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues, verifies, and resolves voter session tokens.

# Tokens

Session tokens are HS256 JWTs signed with the server secret:

	tokens, err := auth.NewTokenService(secret, 24*time.Hour)
	token, err := tokens.Issue(identity)
	identity, ok := tokens.Verify(token)

The subject is the voter id; email, registration number, and level travel as
private claims. Verify only accepts HS256, requires an expiry, and reports a
tampered, expired, or malformed token as ok == false. It never returns an error
the caller must branch on.

# Sessions

A Resolver reads the token from the request:

	resolver := auth.NewResolver(tokens, cfg.SecureCookies)
	identity, ok := resolver.Resolve(r)

The auth-token cookie is checked first, then an Authorization: Bearer header.
SetCookie and ClearCookie manage the HttpOnly, SameSite=Strict cookie on
login and logout.
*/
package auth
