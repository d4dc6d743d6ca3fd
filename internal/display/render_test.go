package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adda-Baaj/newstimes/internal/domain"
)

func sampleResult() domain.FetchResult {
	return domain.NewFetchResult([]domain.Article{
		{Section: "World news", Title: "Headline one", PublishedAt: "2018-03-13T19:53:59Z", URL: "https://g/1"},
		{Section: "Sport", Title: "Headline two", PublishedAt: "2018-03-14T08:00:00Z", URL: "https://g/2"},
	})
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), Options{Descriptions: []string{"", "A short summary"}}))

	out := buf.String()
	assert.Contains(t, out, "Headline one")
	assert.Contains(t, out, "World news")
	assert.Contains(t, out, "2018-03-13")
	assert.NotContains(t, out, "19:53:59")
	assert.Contains(t, out, "A short summary")
	assert.Less(t, strings.Index(out, "Headline one"), strings.Index(out, "Headline two"))
}

func TestRenderEmptyStates(t *testing.T) {
	tests := []struct {
		res  domain.FetchResult
		want string
	}{
		{res: domain.NewFetchResult(nil), want: MsgNoNews},
		{res: domain.FailedResult(domain.StatusOffline, errors.New("offline")), want: MsgNoConnection},
		{res: domain.FailedResult(domain.StatusTransientFailure, errors.New("timeout")), want: MsgUnreachable},
		{res: domain.FailedResult(domain.StatusPermanentFailure, errors.New("decode")), want: MsgBadResponse},
	}

	for _, tt := range tests {
		t.Run(tt.res.Status.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.res, Options{}))
			assert.Equal(t, tt.want+"\n", buf.String())

			var colored bytes.Buffer
			require.NoError(t, Render(&colored, tt.res, Options{Colors: true}))
			assert.Contains(t, colored.String(), tt.want)
			assert.Contains(t, colored.String(), "\x1b[")
		})
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, sampleResult()))

	var doc struct {
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Articles []domain.Article `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "success", doc.Status)
	assert.Empty(t, doc.Message)
	assert.Equal(t, sampleResult().Articles, doc.Articles)
}

func TestRenderJSONFailure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, domain.FailedResult(domain.StatusTransientFailure, errors.New("dial tcp: timeout"))))

	out := buf.String()
	assert.Contains(t, out, `"status": "transient_failure"`)
	assert.Contains(t, out, MsgUnreachable)
	assert.Contains(t, out, "dial tcp: timeout")
	assert.Contains(t, out, `"articles": []`)
}

func TestRenderJSONHidesAPIKey(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New(`Get "http://h/search?section=world&api-key=SECRET": connection refused`)
	require.NoError(t, RenderJSON(&buf, domain.FailedResult(domain.StatusTransientFailure, err)))

	assert.NotContains(t, buf.String(), "SECRET")
	assert.Contains(t, buf.String(), "api-key=REDACTED")
}
