package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adda-Baaj/newstimes/internal/domain"
)

type recordingPublisher struct {
	id     string
	events []Event
	err    error
}

func (p *recordingPublisher) ID() string   { return p.id }
func (p *recordingPublisher) Type() string { return "test" }
func (p *recordingPublisher) Publish(_ context.Context, evt Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func TestPublishArticles(t *testing.T) {
	ok := &recordingPublisher{id: "ok"}
	bad := &recordingPublisher{id: "bad", err: errors.New("down")}
	articles := []domain.Article{
		{Section: "World news", Title: "A", URL: "https://g/a"},
		{Section: "Sport", Title: "B", URL: "https://g/b"},
	}

	sum, err := PublishArticles(context.Background(), []Publisher{ok, bad}, "guardian", articles, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publisher bad")
	assert.Equal(t, Summary{Delivered: 2, Failed: 2}, sum)

	require.Len(t, ok.events, 2)
	assert.Equal(t, "guardian", ok.events[0].ProviderID)
	assert.Equal(t, "https://g/b", ok.events[1].URL)
}

func TestPublishArticlesNothingToDo(t *testing.T) {
	sum, err := PublishArticles(context.Background(), nil, "guardian", []domain.Article{{}}, nil)
	require.NoError(t, err)
	assert.Zero(t, sum)
}

func TestPublishArticlesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &recordingPublisher{id: "ok"}

	_, err := PublishArticles(ctx, []Publisher{p}, "guardian", []domain.Article{{URL: "u"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.events)
}
