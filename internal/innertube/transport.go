package innertube

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"time"
)

type TransportOptions struct {
	// LocalAddr binds outbound connections to a source address when valid.
	LocalAddr netip.Addr
	// Proxy routes every request through the given proxy when set.
	Proxy *url.URL
	// InsecureTLS skips certificate verification, needed when dialing a
	// frontend by IP address.
	InsecureTLS bool
}

// Transport is one HTTP client with a fixed egress identity. It is replaced
// wholesale on rotation, never mutated.
type Transport struct {
	http  *http.Client
	local netip.Addr
}

func NewTransport(opts TransportOptions) *Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if opts.LocalAddr.IsValid() {
		dialer.LocalAddr = &net.TCPAddr{IP: opts.LocalAddr.AsSlice()}
	}

	rt := &http.Transport{
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if opts.Proxy != nil {
		rt.Proxy = http.ProxyURL(opts.Proxy)
	}
	if opts.InsecureTLS {
		rt.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Transport{
		http:  &http.Client{Transport: rt},
		local: opts.LocalAddr,
	}
}

func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	return t.http.Do(req)
}

// LocalAddr is the bound source address, invalid when unbound.
func (t *Transport) LocalAddr() netip.Addr {
	return t.local
}

// Close drops idle connections; in-flight requests finish normally.
func (t *Transport) Close() {
	t.http.CloseIdleConnections()
}
