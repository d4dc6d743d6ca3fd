package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adda-Baaj/newstimes/internal/domain"
	"github.com/Adda-Baaj/newstimes/internal/logger"
	"github.com/Adda-Baaj/newstimes/pkg/providers"
)

// Pipeline runs one fetch-and-parse pass and never lets an error escape.
type Pipeline struct {
	fetcher  providers.Fetcher
	provider providers.Provider
	log      logger.Logger
}

// NewPipeline binds a fetcher to the provider it talks to.
func NewPipeline(fetcher providers.Fetcher, provider providers.Provider, log logger.Logger) *Pipeline {
	if fetcher == nil {
		fetcher = providers.NewGuardianFetcher(nil)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Pipeline{fetcher: fetcher, provider: provider, log: log}
}

// FetchArticles performs a single GET of requestURL and classifies the outcome.
func (p *Pipeline) FetchArticles(ctx context.Context, requestURL string) (res domain.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorObj("fetch pipeline panicked", "fetch_panic", map[string]any{
				"provider_id": p.provider.ID,
				"panic":       fmt.Sprint(r),
			})
			res = domain.FailedResult(domain.StatusPermanentFailure, fmt.Errorf("fetch pipeline panic: %v", r))
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	p.log.DebugObj("fetching articles", "fetch_start", map[string]any{
		"provider_id": p.provider.ID,
		"url":         providers.RedactAPIKey(requestURL),
	})

	articles, err := p.fetcher.Fetch(ctx, p.provider, requestURL)
	if err != nil {
		return p.classify(ctx, requestURL, err)
	}

	p.log.InfoObj("articles fetched", "fetch_done", map[string]any{
		"provider_id": p.provider.ID,
		"count":       len(articles),
	})
	return domain.NewFetchResult(articles)
}

// classify maps provider errors onto result statuses and logs each failure kind.
// The returned result carries the redacted error, so callers may print it.
func (p *Pipeline) classify(ctx context.Context, requestURL string, err error) domain.FetchResult {
	err = providers.RedactError(err)
	fields := map[string]any{
		"provider_id": p.provider.ID,
		"url":         providers.RedactAPIKey(requestURL),
		"error":       err.Error(),
	}

	var (
		statusErr *providers.StatusError
		decodeErr *providers.DecodeError
	)

	switch {
	case errors.Is(err, providers.ErrEmptyBody):
		return domain.NewFetchResult(nil)
	case errors.Is(err, providers.ErrInvalidURL):
		p.log.ErrorObj("problem building the request url", "request_url_invalid", fields)
		return domain.FailedResult(domain.StatusPermanentFailure, err)
	case errors.As(err, &statusErr):
		fields["status_code"] = statusErr.Code
		p.log.ErrorObj("error response code", "fetch_status_error", fields)
		if statusErr.Temporary() {
			return domain.FailedResult(domain.StatusTransientFailure, err)
		}
		return domain.FailedResult(domain.StatusPermanentFailure, err)
	case errors.As(err, &decodeErr):
		p.log.ErrorObj("problem parsing the news json results", "decode_error", fields)
		return domain.FailedResult(domain.StatusPermanentFailure, err)
	default:
		if ctx.Err() != nil {
			fields["cancelled"] = true
		}
		p.log.ErrorObj("problem retrieving the news json results", "fetch_error", fields)
		return domain.FailedResult(domain.StatusTransientFailure, err)
	}
}
