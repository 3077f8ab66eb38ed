package client

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error

type options struct {
	client            *http.Client
	rt                http.RoundTripper
	userAgent         string
	noFollowRedirects bool
	logger            *slog.Logger
	tracer            trace.Tracer
}

// WithClient replaces the default [http.Client] used by the [Client].
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTracer injects a [trace.Tracer] so every transport call is
// wrapped in a span. A no-op tracer is used when unset.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		c.tracer = tracer
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
