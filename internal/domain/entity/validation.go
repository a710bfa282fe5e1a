package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateFeedURL validates the format of a configured feed URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a host.
// Feed URLs come from operator configuration, so no DNS resolution is done here.
func ValidateFeedURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required", Err: ErrInvalidInput}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
			Err:     ErrInvalidInput,
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme", Err: ErrInvalidInput}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host", Err: ErrInvalidInput}
	}

	return nil
}
