package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// Poster is implemented by clients that can also send request bodies.
type Poster interface {
	Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error)
}
