package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Adda-Baaj/newstimes/internal/domain"
)

// GuardianFetcher fetches articles from the Guardian content search API.
type GuardianFetcher struct {
	client HTTPClient
}

// NewGuardianFetcher builds a fetcher for the Guardian search endpoint.
func NewGuardianFetcher(client HTTPClient) *GuardianFetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &GuardianFetcher{client: client}
}

// ID returns the provider type handled by this fetcher.
func (f *GuardianFetcher) ID() string {
	return ProviderTypeGuardian
}

// Fetch performs one GET against requestURL and decodes the search results.
// No retries are attempted.
func (f *GuardianFetcher) Fetch(ctx context.Context, cfg Provider, requestURL string) ([]domain.Article, error) {
	if err := validateRequestURL(requestURL); err != nil {
		return nil, err
	}

	resp, err := f.client.Get(ctx, requestURL, Headers(cfg))
	if err != nil {
		return nil, fmt.Errorf("fetch %s search: %w", providerLabel(cfg), err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode(), Snippet: responseSnippet(body)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	return decodeSearchResponse(body, cfg.Decode)
}

// validateRequestURL rejects URLs the transport could never dial.
func validateRequestURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: url is empty", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}

func providerLabel(cfg Provider) string {
	if cfg.ID != "" {
		return cfg.ID
	}
	return ProviderTypeGuardian
}

type searchEnvelope struct {
	Response *searchResponse `json:"response"`
}

type searchResponse struct {
	Results *[]json.RawMessage `json:"results"`
}

// searchResult uses pointers so a missing or null key is distinguishable from an empty string.
type searchResult struct {
	SectionName        *string `json:"sectionName"`
	WebTitle           *string `json:"webTitle"`
	WebPublicationDate *string `json:"webPublicationDate"`
	WebURL             *string `json:"webUrl"`
}

// decodeSearchResponse maps {"response":{"results":[...]}} onto articles, keeping input order.
func decodeSearchResponse(body []byte, policy DecodePolicy) ([]domain.Article, error) {
	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if env.Response == nil {
		return nil, &DecodeError{Err: errors.New(`missing "response" object`)}
	}
	if env.Response.Results == nil {
		return nil, &DecodeError{Err: errors.New(`missing "results" array`)}
	}

	raw := *env.Response.Results
	articles := make([]domain.Article, 0, len(raw))
	for i, item := range raw {
		art, err := decodeSearchResult(item)
		if err != nil {
			if policy == DecodeSkipMalformed {
				continue
			}
			return nil, &DecodeError{Err: fmt.Errorf("results[%d]: %w", i, err)}
		}
		articles = append(articles, art)
	}
	return articles, nil
}

func decodeSearchResult(raw json.RawMessage) (domain.Article, error) {
	var r searchResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.Article{}, err
	}

	var missing []string
	if r.SectionName == nil {
		missing = append(missing, "sectionName")
	}
	if r.WebTitle == nil {
		missing = append(missing, "webTitle")
	}
	if r.WebPublicationDate == nil {
		missing = append(missing, "webPublicationDate")
	}
	if r.WebURL == nil {
		missing = append(missing, "webUrl")
	}
	if len(missing) > 0 {
		return domain.Article{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}

	return domain.Article{
		Section:     *r.SectionName,
		Title:       *r.WebTitle,
		PublishedAt: *r.WebPublicationDate,
		URL:         *r.WebURL,
	}, nil
}
