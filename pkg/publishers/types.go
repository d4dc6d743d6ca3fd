package publishers

import (
	"context"
	"time"

	"github.com/Adda-Baaj/newstimes/internal/domain"
)

// Event is the payload delivered to sinks, one per fetched article.
type Event struct {
	ProviderID  string    `json:"provider_id"`
	Section     string    `json:"section"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"published_at"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// NewEvent builds the event for an article.
func NewEvent(providerID string, art domain.Article, fetchedAt time.Time) Event {
	return Event{
		ProviderID:  providerID,
		Section:     art.Section,
		Title:       art.Title,
		URL:         art.URL,
		PublishedAt: art.PublishedAt,
		FetchedAt:   fetchedAt.UTC(),
	}
}

// Publisher delivers events to one sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the subset of the application logger publishers need.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
}

type nopLogger struct{}

func (nopLogger) DebugObj(string, string, map[string]any) {}
func (nopLogger) InfoObj(string, string, map[string]any)  {}
func (nopLogger) WarnObj(string, string, map[string]any)  {}
func (nopLogger) ErrorObj(string, string, map[string]any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
