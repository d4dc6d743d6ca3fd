package cli

import (
	"context"
	"fmt"

	"github.com/Adda-Baaj/newstimes/internal/domain"
	"github.com/Adda-Baaj/newstimes/internal/feed"
	"github.com/Adda-Baaj/newstimes/internal/netcheck"
	"github.com/Adda-Baaj/newstimes/internal/settings"
	"github.com/Adda-Baaj/newstimes/pkg/httpclient"
	"github.com/Adda-Baaj/newstimes/pkg/providers"
)

// session holds the collaborators of one fetch.
type session struct {
	provider providers.Provider
	client   httpclient.Client
	store    *settings.Store
	loader   *feed.Loader
}

func (a *app) openStore() (*settings.Store, error) {
	store, err := settings.Open(a.cfg.Settings.Path, a.cfg.Settings.DefaultSection, a.log)
	if err != nil {
		return nil, fmt.Errorf("opening settings: %w", err)
	}
	return store, nil
}

func (a *app) newSession(assumeOnline bool) (*session, error) {
	provider := a.cfg.Provider()
	client := httpclient.NewRestyClient(httpclient.WithUserAgent(a.cfg.API.UserAgent))

	fetcher, err := providers.DefaultFetcherRegistry(client).FetcherFor(provider)
	if err != nil {
		return nil, err
	}
	builder, err := provider.RequestBuilder()
	if err != nil {
		return nil, err
	}
	network, err := a.checker(assumeOnline)
	if err != nil {
		return nil, err
	}
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	pipeline := feed.NewPipeline(fetcher, provider, a.log)
	return &session{
		provider: provider,
		client:   client,
		store:    store,
		loader:   feed.NewLoader(pipeline, builder, store, network, a.log),
	}, nil
}

func (a *app) checker(assumeOnline bool) (netcheck.Checker, error) {
	if assumeOnline {
		return netcheck.Static(true), nil
	}
	if a.network != nil {
		return a.network, nil
	}

	addr := a.cfg.Connectivity.ProbeAddress
	if addr == "" {
		var err error
		if addr, err = netcheck.ProbeAddress(a.cfg.API.BaseURL); err != nil {
			return nil, fmt.Errorf("deriving probe address: %w", err)
		}
	}
	return netcheck.NewDialChecker(addr, a.cfg.Connectivity.Timeout), nil
}

// fetch runs one load and waits for it. An empty section uses the stored filter.
func (s *session) fetch(ctx context.Context, section string) (domain.FetchResult, error) {
	var task *feed.Task
	if section != "" {
		task = s.loader.LoadSection(ctx, section)
	} else {
		task = s.loader.Load(ctx)
	}
	return task.Wait(ctx)
}

func (s *session) Close() error {
	s.loader.Close()
	return s.store.Close()
}
