package providers

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardianBase = "http://content.guardianapis.com/search?&="

func TestRequestBuilderBuild(t *testing.T) {
	b, err := NewRequestBuilder(guardianBase, "K")
	require.NoError(t, err)

	assert.Equal(t,
		"http://content.guardianapis.com/search?&=&section=world&api-key=K",
		b.Build("world"),
	)
}

func TestRequestBuilderEscapesValues(t *testing.T) {
	b, err := NewRequestBuilder(guardianBase, "k/ey=1")
	require.NoError(t, err)

	got := b.Build("world news & politics")
	assert.Equal(t,
		"http://content.guardianapis.com/search?&=&section=world%20news%20%26%20politics&api-key=k%2Fey%3D1",
		got,
	)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "world news & politics", u.Query().Get("section"))
	assert.Equal(t, "k/ey=1", u.Query().Get("api-key"))
}

func TestRequestBuilderSeparators(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{name: "no query", base: "https://example.com/search", want: "https://example.com/search?section=s&api-key=k"},
		{name: "trailing question mark", base: "https://example.com/search?", want: "https://example.com/search?section=s&api-key=k"},
		{name: "existing query", base: "https://example.com/search?q=x", want: "https://example.com/search?q=x&section=s&api-key=k"},
		{name: "trailing ampersand", base: "https://example.com/search?q=x&", want: "https://example.com/search?q=x&section=s&api-key=k"},
		{name: "fragment kept last", base: "https://example.com/search#top", want: "https://example.com/search?section=s&api-key=k#top"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewRequestBuilder(tt.base, "k")
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Build("s"))
		})
	}
}

func TestRequestBuilderAcceptsAnySection(t *testing.T) {
	b, err := NewRequestBuilder(guardianBase, "K")
	require.NoError(t, err)

	assert.Equal(t, "http://content.guardianapis.com/search?&=&section=&api-key=K", b.Build(""))
}

func TestNewRequestBuilderRejectsMalformedBase(t *testing.T) {
	for _, base := range []string{"", "   ", "content.guardianapis.com/search", "http://", "://bad"} {
		_, err := NewRequestBuilder(base, "K")
		assert.ErrorIs(t, err, ErrInvalidURL, base)
	}
}

func TestRedactAPIKey(t *testing.T) {
	assert.Equal(t, "http://h/search?section=world&api-key=REDACTED",
		RedactAPIKey("http://h/search?section=world&api-key=K"))
	assert.Equal(t, `Get "http://h/?api-key=REDACTED&x=1": refused`,
		RedactAPIKey(`Get "http://h/?api-key=K%2B1&x=1": refused`))
	assert.Equal(t, "http://h/search", RedactAPIKey("http://h/search"))
}

func TestRedactErrorKeepsChain(t *testing.T) {
	assert.NoError(t, RedactError(nil))

	plain := errors.New("no key here")
	assert.Same(t, plain, RedactError(plain))

	wrapped := fmt.Errorf("GET http://h/?api-key=K: %w", ErrEmptyBody)
	got := RedactError(wrapped)
	assert.Equal(t, "GET http://h/?api-key=REDACTED: empty response body", got.Error())
	assert.ErrorIs(t, got, ErrEmptyBody)
}

func TestProviderRequestBuilder(t *testing.T) {
	b, err := Provider{SourceURL: guardianBase, APIKey: "K"}.RequestBuilder()
	require.NoError(t, err)
	assert.Equal(t, guardianBase+"&section=world&api-key=K", b.Build("world"))

	_, err = Provider{SourceURL: "no-scheme", APIKey: "K"}.RequestBuilder()
	assert.ErrorIs(t, err, ErrInvalidURL)
}
