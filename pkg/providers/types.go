package providers

import (
	"context"
	"strings"
	"time"

	"github.com/Adda-Baaj/newstimes/internal/domain"
	"github.com/Adda-Baaj/newstimes/pkg/httpclient"
)

const (
	// ProviderTypeGuardian selects the Guardian content search API.
	ProviderTypeGuardian = "guardian"

	defaultUserAgent = "newstimes/1.0"
)

// HTTPClient is the transport used by fetchers.
type HTTPClient = httpclient.Client

// DecodePolicy controls how a malformed result record affects the batch.
type DecodePolicy int

const (
	// DecodeStrict fails the whole batch when any record is malformed.
	DecodeStrict DecodePolicy = iota
	// DecodeSkipMalformed drops malformed records and keeps the rest.
	DecodeSkipMalformed
)

// Provider describes the remote search endpoint.
type Provider struct {
	ID             string
	Type           string
	SourceURL      string
	APIKey         string
	UserAgent      string
	Headers        map[string]string
	RequestDelayMS int
	Decode         DecodePolicy
}

// RequestDelay returns the pause between consecutive requests to the provider.
func (p Provider) RequestDelay() time.Duration {
	if p.RequestDelayMS <= 0 {
		return 0
	}
	return time.Duration(p.RequestDelayMS) * time.Millisecond
}

// Fetcher retrieves and decodes articles from a fully built request URL.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, cfg Provider, requestURL string) ([]domain.Article, error)
}

// FetcherRegistry resolves the fetcher for a provider.
type FetcherRegistry interface {
	FetcherFor(cfg Provider) (Fetcher, error)
}

// UserAgent returns the configured User-Agent or the built-in default.
func UserAgent(cfg Provider) string {
	if agent := strings.TrimSpace(cfg.UserAgent); agent != "" {
		return agent
	}
	return defaultUserAgent
}

// Headers returns the request headers for the provider's own API, custom headers included.
func Headers(cfg Provider) map[string]string {
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": UserAgent(cfg),
	}
	for k, v := range cfg.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		headers[k] = v
	}
	return headers
}
