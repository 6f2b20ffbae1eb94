package innertube

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"tubeharvest/internal/innertube/tree"
	"tubeharvest/internal/innertube/wire"
	"tubeharvest/internal/metrics"
)

const maxResponseBytes = 32 << 20

// Credentials decorate a request. TokenSource is consulted at send time and
// wins over a static Authorization value.
type Credentials struct {
	Authorization string
	Cookie        string
	TokenSource   oauth2.TokenSource
}

// Prepared is a fully built call: everything that goes on the wire except
// token-source credentials.
type Prepared struct {
	Op     Operation
	URL    string
	Header http.Header
	Body   []byte
}

// Request is one operation bound to a client, ready to be decorated and sent.
// With* methods return modified copies; the receiver is never changed.
type Request[T any] struct {
	client  *Client
	op      Operation
	payload *wire.Payload
	extract func(tree.Node) (T, error)
	creds   Credentials
	proxy   *url.URL
	invalid error
}

func newRequest[T any](c *Client, id OperationID, payload *wire.Payload, extract func(tree.Node) (T, error)) Request[T] {
	op, ok := Lookup(id)
	if !ok {
		return Request[T]{client: c, invalid: fmt.Errorf("unknown operation %d", id)}
	}
	if payload == nil {
		payload = wire.NewPayload()
	}
	payload.
		Set("context.client.clientName", op.Client.Name).
		Set("context.client.clientVersion", op.Client.Version)
	return Request[T]{client: c, op: op, payload: payload, extract: extract}
}

func invalidRequest[T any](c *Client, id OperationID, err error) Request[T] {
	op, _ := Lookup(id)
	return Request[T]{client: c, op: op, invalid: err}
}

func (r Request[T]) WithAuthorization(value string) Request[T] {
	r.creds.Authorization = value
	return r
}

func (r Request[T]) WithCookie(value string) Request[T] {
	r.creds.Cookie = value
	return r
}

func (r Request[T]) WithTokenSource(ts oauth2.TokenSource) Request[T] {
	r.creds.TokenSource = ts
	return r
}

func (r Request[T]) WithCredentials(creds Credentials) Request[T] {
	r.creds = creds
	return r
}

// Operation is the table entry the request was built from.
func (r Request[T]) Operation() Operation {
	return r.op
}

// Prepare builds the call without touching the network. It fails on invalid
// input and on missing credentials the operation requires.
func (r Request[T]) Prepare() (*Prepared, error) {
	if r.invalid != nil {
		return nil, r.wrap(ErrInvalidInput, 0, r.invalid)
	}
	if r.op.Requires&NeedsAuthorization != 0 && r.creds.Authorization == "" && r.creds.TokenSource == nil {
		return nil, r.wrap(ErrCredentialsRequired, 0, errors.New("authorization"))
	}
	if r.op.Requires&NeedsCookie != 0 && r.creds.Cookie == "" {
		return nil, r.wrap(ErrCredentialsRequired, 0, errors.New("cookie"))
	}
	if r.op.Direct && r.proxy == nil {
		return nil, r.wrap(ErrInvalidInput, 0, errors.New("proxy required"))
	}

	payload, err := r.payload.Bytes()
	if err != nil {
		return nil, r.wrap(ErrInvalidInput, 0, err)
	}

	body, contentType, err := r.encode(payload)
	if err != nil {
		return nil, r.wrap(ErrInvalidInput, 0, err)
	}

	host := r.client.target
	if r.op.Direct {
		host = r.op.Host
	}

	header := make(http.Header)
	header.Set("Host", r.op.Host)
	header.Set("Content-Type", contentType)
	if r.op.FieldMask != "" {
		header.Set("X-Goog-Fieldmask", r.op.FieldMask)
	}
	if r.op.Origin != "" {
		header.Set("Origin", r.op.Origin)
	}
	if r.creds.Authorization != "" {
		header.Set("Authorization", r.creds.Authorization)
	}
	if r.creds.Cookie != "" {
		header.Set("Cookie", r.creds.Cookie)
	}
	for k, v := range r.op.Headers {
		header.Set(k, v)
	}

	return &Prepared{
		Op:     r.op,
		URL:    "https://" + host + r.op.Path,
		Header: header,
		Body:   body,
	}, nil
}

func (r Request[T]) encode(payload []byte) ([]byte, string, error) {
	switch r.op.RequestFormat {
	case FormatJSON:
		body, err := wire.JSONCodec{}.Encode(r.op.RequestMessage, payload)
		return body, wire.ContentTypeJSON, err
	case FormatBase64Codec:
		raw, err := r.client.codec.Encode(r.op.RequestMessage, payload)
		if err != nil {
			return nil, "", err
		}
		return []byte(base64.StdEncoding.EncodeToString(raw)), r.client.codec.ContentType(), nil
	default:
		body, err := r.client.codec.Encode(r.op.RequestMessage, payload)
		return body, r.client.codec.ContentType(), err
	}
}

// Send performs the call and extracts its result. Failures come back as
// *Error; nothing is retried.
func (r Request[T]) Send(ctx context.Context) (T, error) {
	var zero T

	prepared, err := r.Prepare()
	if err != nil {
		return zero, err
	}

	start := time.Now()
	result, status, err := r.roundTrip(ctx, prepared)
	elapsed := time.Since(start)

	metrics.Metrics.UpstreamDuration.WithLabelValues(r.op.Name).Observe(elapsed.Seconds())
	metrics.Metrics.UpstreamRequests.WithLabelValues(r.op.Name, outcome(err)).Inc()

	r.client.logger.Debug("upstream call",
		"operation", r.op.Name,
		"status", status,
		"duration", elapsed,
		"error", err,
	)

	if err != nil {
		return zero, err
	}
	return result, nil
}

func (r Request[T]) roundTrip(ctx context.Context, p *Prepared) (T, int, error) {
	var zero T

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(p.Body))
	if err != nil {
		return zero, 0, r.wrap(ErrInvalidInput, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header = p.Header.Clone()
	req.Host = p.Op.Host
	req.Header.Del("Host")

	if r.creds.TokenSource != nil {
		tok, err := r.creds.TokenSource.Token()
		if err != nil {
			return zero, 0, r.wrap(ErrUnauthorized, 0, fmt.Errorf("fetch token: %w", err))
		}
		tok.SetAuthHeader(req)
	}

	transport := r.client.transport.Load()
	if r.op.Direct {
		transport = NewTransport(TransportOptions{Proxy: r.proxy, InsecureTLS: r.client.insecure})
		defer transport.Close()
	}

	resp, err := transport.Do(req)
	if err != nil {
		return zero, 0, r.wrap(ErrTransport, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return zero, resp.StatusCode, r.wrap(ErrTransport, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	if kind := classify(resp.StatusCode); kind != nil {
		if errors.Is(kind, ErrNotFound) && r.op.NotFoundIsEmpty {
			result, err := r.extract(tree.Missing())
			return result, resp.StatusCode, err
		}
		return zero, resp.StatusCode, r.wrap(kind, resp.StatusCode, nil)
	}

	root, err := r.decode(body)
	if err != nil {
		return zero, resp.StatusCode, r.wrap(ErrDecode, resp.StatusCode, err)
	}

	result, err := r.extract(root)
	if err != nil {
		return zero, resp.StatusCode, r.wrap(ErrRequiredFieldMissing, resp.StatusCode, err)
	}
	return result, resp.StatusCode, nil
}

func (r Request[T]) decode(body []byte) (tree.Node, error) {
	var doc []byte
	var err error

	switch r.op.ResponseFormat {
	case FormatNone:
		return tree.Missing(), nil
	case FormatJSON:
		doc = body
	case FormatBase64Codec:
		raw, derr := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(body)))
		if derr != nil {
			return tree.Node{}, fmt.Errorf("decode base64 body: %w", derr)
		}
		doc, err = r.client.codec.Decode(r.op.ResponseMessage, raw)
	default:
		doc, err = r.client.codec.Decode(r.op.ResponseMessage, body)
	}
	if err != nil {
		return tree.Node{}, err
	}
	return tree.Parse(doc)
}

func (r Request[T]) wrap(kind error, status int, err error) error {
	return &Error{Op: r.op.Name, Kind: kind, StatusCode: status, Err: err}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInternalUpstream):
		return "upstream_error"
	case errors.Is(err, ErrUnknownStatus):
		return "unknown_status"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, ErrRequiredFieldMissing):
		return "missing_field"
	default:
		return "invalid_input"
	}
}
