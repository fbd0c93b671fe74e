package linkopen

import (
	"fmt"
	"net/url"
)

// ValidateURL checks that rawURL is an absolute http(s) URL with a host
func ValidateURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("URL must use http or https scheme, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("URL must have a host")
	}

	return parsed, nil
}
