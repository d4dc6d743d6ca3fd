package netcheck

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 3 * time.Second

// Checker reports whether the network is usable before a fetch is attempted.
type Checker interface {
	Connected(ctx context.Context) bool
}

// Static always reports the given state.
type Static bool

func (s Static) Connected(context.Context) bool { return bool(s) }

// DialChecker considers the network connected when a TCP connection to Address succeeds.
type DialChecker struct {
	Address string
	Timeout time.Duration

	dial func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewDialChecker probes address with the given timeout.
func NewDialChecker(address string, timeout time.Duration) *DialChecker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DialChecker{Address: address, Timeout: timeout}
}

// Connected dials Address once. Any failure counts as offline.
func (c *DialChecker) Connected(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	dial := c.dial
	if dial == nil {
		d := &net.Dialer{Timeout: c.Timeout}
		dial = d.DialContext
	}

	conn, err := dial(ctx, "tcp", c.Address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// ProbeAddress derives host:port from an endpoint URL.
func ProbeAddress(endpoint string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("endpoint %q has no host", endpoint)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
