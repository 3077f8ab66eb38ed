package client

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Client wraps the std-lib *http.Client.
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs.
type Client struct {
	c      *http.Client
	logger *slog.Logger
	tracer trace.Tracer
}

// Build creates a Client with the given options. The default slog
// logger and a no-op tracer are used unless overridden.
func Build(optFns ...Option) (*Client, error) {
	// A fresh http.Client, never http.DefaultClient: the transport and
	// redirect options below must not leak onto the process-global one.
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("no-op tracer"),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	client.c.Transport = transport

	return client, nil
}

// send hands a built request to the transport. This is the single
// suspension point of a call: headers and body are fully assembled
// before it runs, and nothing downstream executes until it settles.
func (c *Client) send(req *http.Request, info RequestInfo) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), "client.send")
	span.SetAttributes(
		attribute.String("request.id", info.ID),
		attribute.String("http.method", info.Method),
		attribute.String("http.url", info.URL),
	)
	defer span.End()

	resp, err := c.c.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("exec http do: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	return resp, nil
}

// drainAndClose exhausts and closes an unconsumed response body so the
// underlying connection can be reused.
func (c *Client) drainAndClose(body io.ReadCloser) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		c.logger.Error("failed to discard unused body", "error", err)
	}
	if err := body.Close(); err != nil {
		c.logger.Error("failed to close response body", "error", err)
	}
}
