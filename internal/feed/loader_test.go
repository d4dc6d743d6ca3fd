package feed

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adda-Baaj/newstimes/internal/domain"
	"github.com/Adda-Baaj/newstimes/internal/netcheck"
	"github.com/Adda-Baaj/newstimes/pkg/providers"
)

type countingSections struct {
	value string
	reads atomic.Int32
}

func (c *countingSections) SectionFilter() string {
	c.reads.Add(1)
	return c.value
}

type recordingFetcher struct {
	mu    sync.Mutex
	urls  []string
	block bool
	res   domain.FetchResult
}

func (r *recordingFetcher) FetchArticles(ctx context.Context, requestURL string) domain.FetchResult {
	r.mu.Lock()
	r.urls = append(r.urls, requestURL)
	block := r.block
	r.mu.Unlock()

	if block {
		<-ctx.Done()
		return domain.FailedResult(domain.StatusTransientFailure, ctx.Err())
	}
	return r.res
}

func (r *recordingFetcher) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

func newBuilder(t *testing.T) *providers.RequestBuilder {
	t.Helper()
	b, err := providers.NewRequestBuilder("http://content.guardianapis.com/search?&=", "K")
	require.NoError(t, err)
	return b
}

func TestLoaderLoadUsesPersistedSection(t *testing.T) {
	sections := &countingSections{value: "sport"}
	fetcher := &recordingFetcher{res: domain.NewFetchResult([]domain.Article{{Title: "a"}})}
	l := NewLoader(fetcher, newBuilder(t), sections, netcheck.Static(true), nil)

	task := l.Load(context.Background())
	res, err := task.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSuccess, res.Status)
	assert.Equal(t, "sport", task.Section())
	assert.EqualValues(t, 1, sections.reads.Load())
	assert.Equal(t, []string{"http://content.guardianapis.com/search?&=&section=sport&api-key=K"}, fetcher.calls())
}

func TestLoaderLoadSectionSkipsStore(t *testing.T) {
	sections := &countingSections{value: "sport"}
	fetcher := &recordingFetcher{res: domain.NewFetchResult(nil)}
	l := NewLoader(fetcher, newBuilder(t), sections, nil, nil)

	res, err := l.LoadSection(context.Background(), "books").Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusEmpty, res.Status)
	assert.Zero(t, sections.reads.Load())
	require.Len(t, fetcher.calls(), 1)
	assert.Contains(t, fetcher.calls()[0], "section=books")
}

func TestLoaderOfflineNeverFetches(t *testing.T) {
	fetcher := &recordingFetcher{}
	l := NewLoader(fetcher, newBuilder(t), &countingSections{value: "world"}, netcheck.Static(false), nil)

	res, err := l.Load(context.Background()).Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOffline, res.Status)
	assert.ErrorIs(t, res.Err, ErrOffline)
	assert.Empty(t, fetcher.calls())
}

func TestLoaderNewLoadSupersedesPrevious(t *testing.T) {
	fetcher := &recordingFetcher{block: true}
	l := NewLoader(fetcher, newBuilder(t), &countingSections{value: "world"}, nil, nil)

	first := l.Load(context.Background())
	require.Eventually(t, func() bool { return len(fetcher.calls()) == 1 }, time.Second, 5*time.Millisecond)

	fetcher.mu.Lock()
	fetcher.block = false
	fetcher.res = domain.NewFetchResult([]domain.Article{{Title: "fresh"}})
	fetcher.mu.Unlock()

	second := l.Load(context.Background())

	_, err := first.Wait(context.Background())
	assert.ErrorIs(t, err, ErrTaskCancelled)

	res, err := second.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)
	assert.Equal(t, "fresh", res.Articles[0].Title)
}

func TestTaskWaitListenerGone(t *testing.T) {
	fetcher := &recordingFetcher{block: true}
	l := NewLoader(fetcher, newBuilder(t), &countingSections{value: "world"}, nil, nil)
	defer l.Close()

	task := l.Load(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoaderCloseCancelsActiveTask(t *testing.T) {
	fetcher := &recordingFetcher{block: true}
	l := NewLoader(fetcher, newBuilder(t), &countingSections{value: "world"}, nil, nil)

	task := l.Load(context.Background())
	l.Close()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not stop after Close")
	}
	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, ErrTaskCancelled)
}
