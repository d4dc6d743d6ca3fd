package publishers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adda-Baaj/newstimes/internal/domain"
)

// Summary reports how many deliveries succeeded and failed in one dispatch.
type Summary struct {
	Delivered int
	Failed    int
}

// PublishArticles delivers one event per article to every publisher.
// Delivery keeps going after individual failures; the joined error lists them all.
func PublishArticles(ctx context.Context, pubs []Publisher, providerID string, articles []domain.Article, log Logger) (Summary, error) {
	var sum Summary
	if len(pubs) == 0 || len(articles) == 0 {
		return sum, nil
	}
	log = ensureLogger(log)
	now := time.Now()

	var errs []error
	for _, art := range articles {
		evt := NewEvent(providerID, art, now)
		for _, pub := range pubs {
			if err := ctx.Err(); err != nil {
				return sum, errors.Join(append(errs, err)...)
			}
			if err := pub.Publish(ctx, evt); err != nil {
				sum.Failed++
				errs = append(errs, fmt.Errorf("publisher %s: %w", pub.ID(), err))
				log.WarnObj("publish failed", "publish_failed", map[string]any{
					"publisher_id": pub.ID(),
					"url":          evt.URL,
					"error":        err.Error(),
				})
				continue
			}
			sum.Delivered++
		}
	}

	log.InfoObj("articles published", "publish_complete", map[string]any{
		"publishers": len(pubs),
		"articles":   len(articles),
		"delivered":  sum.Delivered,
		"failed":     sum.Failed,
	})
	return sum, errors.Join(errs...)
}
