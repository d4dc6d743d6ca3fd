package providers

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	sectionParam = "section"
	apiKeyParam  = "api-key"
)

// RequestBuilder turns a section filter into a search request URL.
// The base endpoint and API key are fixed at construction.
type RequestBuilder struct {
	base     string
	fragment string
	apiKey   string
}

// NewRequestBuilder validates the base endpoint. A base without scheme or host is a configuration error.
func NewRequestBuilder(baseURL, apiKey string) (*RequestBuilder, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url is empty", ErrInvalidURL)
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q needs a scheme and host", ErrInvalidURL, baseURL)
	}

	base, fragment, _ := strings.Cut(baseURL, "#")
	return &RequestBuilder{base: base, fragment: fragment, apiKey: apiKey}, nil
}

// RequestBuilder returns the builder for the provider's search endpoint and key.
func (p Provider) RequestBuilder() (*RequestBuilder, error) {
	return NewRequestBuilder(p.SourceURL, p.APIKey)
}

// Build appends section and api-key to the base, in that order.
// Whatever query text the base already carries is kept as is.
func (b *RequestBuilder) Build(section string) string {
	var sb strings.Builder
	sb.WriteString(b.base)

	switch {
	case !strings.Contains(b.base, "?"):
		sb.WriteByte('?')
	case strings.HasSuffix(b.base, "?"), strings.HasSuffix(b.base, "&"):
	default:
		sb.WriteByte('&')
	}

	sb.WriteString(sectionParam)
	sb.WriteByte('=')
	sb.WriteString(escapeQueryValue(section))
	sb.WriteByte('&')
	sb.WriteString(apiKeyParam)
	sb.WriteByte('=')
	sb.WriteString(escapeQueryValue(b.apiKey))

	if b.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(b.fragment)
	}
	return sb.String()
}

// escapeQueryValue percent-encodes v, using %20 rather than '+' for spaces.
func escapeQueryValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
