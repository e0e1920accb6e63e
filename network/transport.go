package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// Zoom's CDN fingerprints TLS clients and rejects Go's default handshake on
// some tenants. Media requests therefore go through a Chrome-impersonating
// transport, trying HTTP/2 first and falling back to HTTP/1.1.

var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once
	h1Transport     *http.Transport
	h1TransportOnce sync.Once
)

// MediaClient returns an HTTP client that presents a Chrome TLS fingerprint.
// The returned client negotiates HTTP/2 where the server supports it.
func MediaClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: getH2Transport(),
	}
}

// mediaClientH1 is the HTTP/1.1 fallback for servers that accept the
// fingerprint but refuse the h2 stream.
func mediaClientH1(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: getH1Transport(),
	}
}

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, addr, []string{"h2", "http/1.1"})
			},
		}
	})
	return h2Transport
}

func getH1Transport() *http.Transport {
	h1TransportOnce.Do(func() {
		h1Transport = newTransport()
		h1Transport.DialTLSContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialTLS(ctx, addr, []string{"http/1.1"})
		}
		h1Transport.ForceAttemptHTTP2 = false
	})
	return h1Transport
}

// dialTLS performs a uTLS handshake impersonating Chrome 120.
func dialTLS(ctx context.Context, addr string, nextProtos []string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 30 * time.Second}
	rawConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	host := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
	}

	conn := utls.UClient(rawConn, &utls.Config{
		ServerName: host,
		NextProtos: nextProtos,
	}, utls.HelloChrome_120)

	if err := conn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, fmt.Errorf("tls handshake %s: %w", host, err)
	}

	return conn, nil
}

// doMedia executes a request through the Chrome-fingerprint transport,
// retrying once over HTTP/1.1 when the h2 attempt fails at the protocol
// level rather than with an HTTP status.
func doMedia(req *http.Request, timeout time.Duration) (*http.Response, error) {
	// The fingerprint transport only speaks TLS; plain-http URLs (local
	// tenants, tests) go through the regular client.
	if req.URL.Scheme != "https" {
		return (&http.Client{Timeout: timeout, Transport: newTransport()}).Do(req)
	}

	resp, err := MediaClient(timeout).Do(req)
	if err == nil {
		return resp, nil
	}

	retry := req.Clone(req.Context())
	resp, h1Err := mediaClientH1(timeout).Do(retry)
	if h1Err != nil {
		return nil, fmt.Errorf("media request failed over h2 (%v) and h1: %w", err, h1Err)
	}
	return resp, nil
}
