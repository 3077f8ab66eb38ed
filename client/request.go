package client

import (
	"context"
	"io"
	"net/http"
)

// Get issues a GET request and decodes the JSON response into T.
func Get[T any](ctx context.Context, c *Client, url string, headers http.Header) *Handle[T] {
	return dispatch[T](ctx, c, http.MethodGet, url, PayloadNone, nil, headers)
}

// Post issues a POST request with a JSON-encoded payload and decodes
// the JSON response into T.
func Post[T any](ctx context.Context, c *Client, url string, payload any, headers http.Header) *Handle[T] {
	return dispatch[T](ctx, c, http.MethodPost, url, PayloadJSON, payload, headers)
}

// Patch issues a PATCH request with a JSON-encoded payload and decodes
// the JSON response into T.
func Patch[T any](ctx context.Context, c *Client, url string, payload any, headers http.Header) *Handle[T] {
	return dispatch[T](ctx, c, http.MethodPatch, url, PayloadJSON, payload, headers)
}

// Put issues a PUT request with a JSON-encoded payload and decodes the
// JSON response into T.
func Put[T any](ctx context.Context, c *Client, url string, payload any, headers http.Header) *Handle[T] {
	return dispatch[T](ctx, c, http.MethodPut, url, PayloadJSON, payload, headers)
}

// Delete issues a DELETE request and decodes the JSON response into T.
func Delete[T any](ctx context.Context, c *Client, url string, headers http.Header) *Handle[T] {
	return dispatch[T](ctx, c, http.MethodDelete, url, PayloadNone, nil, headers)
}

// PostFormURLEncoded issues a POST request with the form serialized as
// application/x-www-form-urlencoded and decodes the JSON response into T.
func PostFormURLEncoded[T any](ctx context.Context, c *Client, url string, form map[string]string, headers http.Header) *Handle[T] {
	return dispatch[T](ctx, c, http.MethodPost, url, PayloadURLEncoded, form, headers)
}

// PostMultipartFormData issues a POST request with a multipart/form-data
// body and decodes the JSON response into T. The Content-Type header,
// including the boundary, comes from the multipart encoder rather than
// the header builder.
func PostMultipartFormData[T any](ctx context.Context, c *Client, url string, form MultipartPayload, headers http.Header) *Handle[T] {
	return dispatch[T](ctx, c, http.MethodPost, url, PayloadMultipart, form, headers)
}

// dispatch starts the request pipeline in its own goroutine and hands
// back the caller-owned handle.
func dispatch[T any](ctx context.Context, c *Client, method, url string, pt PayloadType, payload any, headers http.Header) *Handle[T] {
	return start(ctx, func(ctx context.Context, release context.CancelFunc) (*Result[T], error) {
		// The body is fully consumed inside do, so the request
		// context can be torn down as soon as it returns.
		defer release()
		return do[T](ctx, c, method, url, pt, payload, headers)
	})
}

// do runs the full pipeline for one call: validate, build headers,
// encode the payload, send, decode, and apply the decoded value to a
// fresh envelope. Any failure short-circuits; an envelope is returned
// if and only if every stage succeeded.
func do[T any](ctx context.Context, c *Client, method, url string, pt PayloadType, payload any, headers http.Header) (*Result[T], error) {
	if err := checkRequest(method, url); err != nil {
		return nil, err
	}

	res := newResult[T](method, url)

	// A payload-free request carries no Content-Type, whatever its
	// declared payload type.
	effective := pt
	if payload == nil {
		effective = PayloadNone
	}
	hdrs := buildRequestHeaders(effective, headers)

	var body io.Reader
	if payload != nil {
		encoded, contentType, err := encodePayload(payload, pt)
		if err != nil {
			return nil, err
		}
		body = encoded
		if contentType != "" {
			hdrs.Set("Content-Type", contentType)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, vals := range hdrs {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.send(req, res.Request)
	if err != nil {
		return nil, err
	}
	defer c.drainAndClose(resp.Body)

	v, err := decodeResponse[T](method, ResponseJSON, resp)
	if err != nil {
		return nil, err
	}

	res.applyData(v)

	c.logger.Debug("request completed",
		"id", res.Request.ID,
		"method", method,
		"url", url,
		"duration", res.Duration,
	)

	return res, nil
}
