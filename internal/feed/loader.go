package feed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Adda-Baaj/newstimes/internal/domain"
	"github.com/Adda-Baaj/newstimes/internal/logger"
	"github.com/Adda-Baaj/newstimes/internal/netcheck"
	"github.com/Adda-Baaj/newstimes/pkg/providers"
)

var (
	// ErrOffline is attached to results produced when the connectivity check fails.
	ErrOffline = errors.New("no internet connection")
	// ErrTaskCancelled is returned by Wait for tasks that were cancelled or superseded.
	ErrTaskCancelled = errors.New("load task cancelled")
)

// SectionSource supplies the persisted section filter.
type SectionSource interface {
	SectionFilter() string
}

// ArticleFetcher is the fetch-and-parse step used by the loader.
type ArticleFetcher interface {
	FetchArticles(ctx context.Context, requestURL string) domain.FetchResult
}

// Loader runs one background fetch per trigger. Starting a load supersedes the previous one.
type Loader struct {
	fetcher  ArticleFetcher
	builder  *providers.RequestBuilder
	sections SectionSource
	network  netcheck.Checker
	log      logger.Logger

	mu      sync.Mutex
	current *Task
}

// NewLoader wires the loader collaborators. A nil checker assumes the network is up.
func NewLoader(fetcher ArticleFetcher, builder *providers.RequestBuilder, sections SectionSource, network netcheck.Checker, log logger.Logger) *Loader {
	if network == nil {
		network = netcheck.Static(true)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Loader{
		fetcher:  fetcher,
		builder:  builder,
		sections: sections,
		network:  network,
		log:      log,
	}
}

// Load starts a fetch for the persisted section filter.
func (l *Loader) Load(ctx context.Context) *Task {
	return l.start(ctx, func() string { return l.sections.SectionFilter() })
}

// LoadSection starts a fetch for section without consulting the settings store.
func (l *Loader) LoadSection(ctx context.Context, section string) *Task {
	return l.start(ctx, func() string { return section })
}

// Close cancels the active task, if any.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		l.current.Cancel()
		l.current = nil
	}
}

func (l *Loader) start(ctx context.Context, section func() string) *Task {
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task{done: make(chan struct{}), cancel: cancel}

	l.mu.Lock()
	if l.current != nil {
		l.current.Cancel()
	}
	l.current = t
	l.mu.Unlock()

	go func() {
		defer close(t.done)
		defer cancel()

		t.section = section()
		t.result = l.run(taskCtx, t.section)
	}()

	return t
}

func (l *Loader) run(ctx context.Context, section string) domain.FetchResult {
	if !l.network.Connected(ctx) {
		l.log.WarnObj("no internet connection, skipping fetch", "fetch_offline", map[string]any{
			"section": section,
		})
		return domain.FailedResult(domain.StatusOffline, ErrOffline)
	}

	return l.fetcher.FetchArticles(ctx, l.builder.Build(section))
}

// Task is a single in-flight load.
type Task struct {
	done      chan struct{}
	cancel    context.CancelFunc
	cancelled atomic.Bool

	section string
	result  domain.FetchResult
}

// Done is closed once the task has finished, cancelled or not.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel aborts the task. Its result will never be delivered.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
	t.cancel()
}

// Section returns the section filter the task used. Valid once Done is closed.
func (t *Task) Section() string {
	<-t.done
	return t.section
}

// Wait blocks until the task finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) (domain.FetchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return domain.FetchResult{}, ctx.Err()
	case <-t.done:
	}

	if t.cancelled.Load() {
		return domain.FetchResult{}, ErrTaskCancelled
	}
	return t.result, nil
}
