package middleware

import "strings"

// OriginValidator is an interface for validating allowed origins in CORS requests.
type OriginValidator interface {
	// IsAllowed reports whether origin may read responses.
	IsAllowed(origin string) bool

	// AllowsAny reports whether every origin is allowed.
	AllowsAny() bool
}

// NewOriginValidator returns an AnyOriginValidator if origins contains "*",
// otherwise a WhitelistValidator.
func NewOriginValidator(origins []string) OriginValidator {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return AnyOriginValidator{}
		}
	}
	return NewWhitelistValidator(origins)
}

// AnyOriginValidator allows every origin.
type AnyOriginValidator struct{}

// IsAllowed always returns true for a non-empty origin.
func (AnyOriginValidator) IsAllowed(origin string) bool { return origin != "" }

// AllowsAny returns true.
func (AnyOriginValidator) AllowsAny() bool { return true }

// WhitelistValidator implements exact-match origin validation for CORS requests.
//
// Example usage:
//
//	validator := NewWhitelistValidator([]string{
//	    "http://localhost:3000",
//	    "https://example.com",
//	})
//	allowed := validator.IsAllowed("http://localhost:3000") // true
//	allowed = validator.IsAllowed("http://malicious.com")   // false
type WhitelistValidator struct {
	allowedOrigins map[string]struct{}
}

// NewWhitelistValidator creates a new WhitelistValidator with the given list of allowed origins.
// Origins are normalized: lowercased, trimmed, trailing slash removed. Empty entries are dropped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin = normalizeOrigin(origin); origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	return &WhitelistValidator{allowedOrigins: allowed}
}

// IsAllowed checks if the given origin is in the whitelist.
// Comparison is case-insensitive and ignores a trailing slash.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	_, ok := v.allowedOrigins[origin]
	return ok
}

// AllowsAny returns false.
func (v *WhitelistValidator) AllowsAny() bool { return false }

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
