package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// ConnectTimeout bounds establishing the TCP connection.
	ConnectTimeout = 15 * time.Second
	// ReadTimeout bounds waiting for the response once connected.
	ReadTimeout = 10 * time.Second
)

// RestyClient implements Client on top of resty.
// resty buffers the whole body and closes the underlying stream on every path.
type RestyClient struct {
	client *resty.Client
}

// Option customizes a RestyClient.
type Option func(*options)

type options struct {
	connect time.Duration
	read    time.Duration
	agent   string
}

// WithTimeouts overrides the connect and read timeouts.
func WithTimeouts(connect, read time.Duration) Option {
	return func(o *options) {
		if connect > 0 {
			o.connect = connect
		}
		if read > 0 {
			o.read = read
		}
	}
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(agent string) Option {
	return func(o *options) {
		o.agent = strings.TrimSpace(agent)
	}
}

// NewRestyClient builds a client using ConnectTimeout and ReadTimeout unless overridden.
func NewRestyClient(opts ...Option) *RestyClient {
	o := options{connect: ConnectTimeout, read: ReadTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   o.connect,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   o.connect,
		ResponseHeaderTimeout: o.read,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}

	c := resty.New().
		SetTransport(transport).
		SetTimeout(o.connect + o.read)
	if o.agent != "" {
		c.SetHeader("User-Agent", o.agent)
	}

	return &RestyClient{client: c}
}

// Get performs a single GET. No retries are configured.
func (c *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return c.Do(ctx, http.MethodGet, url, headers, nil)
}

// Do performs a request with the given method and optional body.
func (c *RestyClient) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req := c.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		// the transport error already names the url
		return nil, fmt.Errorf("%s request: %w", method, err)
	}
	return resp, nil
}
