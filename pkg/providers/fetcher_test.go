package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFetcherRegistry(t *testing.T) {
	reg := DefaultFetcherRegistry(nil)

	f, err := reg.FetcherFor(Provider{ID: "news", Type: " Guardian "})
	require.NoError(t, err)
	assert.Equal(t, ProviderTypeGuardian, f.ID())

	_, err = reg.FetcherFor(Provider{ID: "news", Type: "newsapi"})
	assert.Error(t, err)

	_, err = reg.FetcherFor(Provider{ID: "news"})
	assert.Error(t, err)
}

func TestNewFetcherRegistrySkipsNil(t *testing.T) {
	reg := NewFetcherRegistry(nil, NewGuardianFetcher(nil))

	_, err := reg.FetcherFor(Provider{Type: ProviderTypeGuardian})
	assert.NoError(t, err)
}

func TestHeaders(t *testing.T) {
	h := Headers(Provider{Headers: map[string]string{" X-Trace ": " abc ", "": "skip", "X-Empty": " "}})

	assert.Equal(t, defaultUserAgent, h["User-Agent"])
	assert.Equal(t, "application/json", h["Accept"])
	assert.Equal(t, "abc", h["X-Trace"])
	assert.NotContains(t, h, "X-Empty")
	assert.NotContains(t, h, "")
}

func TestProviderRequestDelay(t *testing.T) {
	assert.Zero(t, Provider{}.RequestDelay())
	assert.Equal(t, int64(250), Provider{RequestDelayMS: 250}.RequestDelay().Milliseconds())
}

func TestResponseSnippet(t *testing.T) {
	assert.Equal(t, "<empty>", responseSnippet([]byte("   ")))
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, responseSnippet(long), 515)
}
