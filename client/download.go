package client

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
)

// FileBlob is the outcome of a file download: the filename announced
// by the server, if any, and a future holding the raw body bytes.
type FileBlob struct {
	// Filename is parsed from the Content-Disposition header. It is
	// empty when the header is missing, the disposition is not
	// "attachment", or no filename parameter is present.
	Filename string

	// Body resolves independently of the download's envelope: the
	// envelope settles as soon as response headers arrive, while the
	// body bytes may still be buffering.
	Body *BlobFuture
}

// BlobFuture buffers a response body in the background.
type BlobFuture struct {
	done chan struct{}
	data []byte
	err  error
}

// Done returns a channel that is closed once the body is fully
// buffered or failed.
func (b *BlobFuture) Done() <-chan struct{} { return b.done }

// Wait blocks until the body is fully buffered and returns the bytes.
func (b *BlobFuture) Wait() ([]byte, error) {
	<-b.done
	return b.data, b.err
}

// newBlobFuture consumes body in its own goroutine. The future owns
// the body, closes it when done, and then releases the request
// context that keeps the transfer alive.
func newBlobFuture(logger *slog.Logger, body io.ReadCloser, release context.CancelFunc) *BlobFuture {
	b := &BlobFuture{done: make(chan struct{})}

	go func() {
		defer close(b.done)
		defer release()
		defer func() {
			if err := body.Close(); err != nil {
				logger.Error("failed to close download body", "error", err)
			}
		}()

		b.data, b.err = io.ReadAll(body)
	}()

	return b
}

// DownloadFile issues a GET request for a binary body. Unlike the JSON
// operations it never encodes a payload and skips the generic decoder:
// on a success status the envelope settles immediately with a
// [FileBlob] whose bytes buffer in the background.
func DownloadFile(ctx context.Context, c *Client, url string, headers http.Header) *Handle[*FileBlob] {
	return start(ctx, func(ctx context.Context, release context.CancelFunc) (*Result[*FileBlob], error) {
		if err := checkRequest(http.MethodGet, url); err != nil {
			return nil, err
		}

		res := newResult[*FileBlob](http.MethodGet, url)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		for k, vals := range buildRequestHeaders(PayloadNone, headers) {
			for _, v := range vals {
				req.Header.Add(k, v)
			}
		}

		resp, err := c.send(req, res.Request)
		if err != nil {
			return nil, err
		}

		if !success(resp.StatusCode) {
			c.drainAndClose(resp.Body)
			return nil, &StatusError{Method: http.MethodGet, StatusCode: resp.StatusCode}
		}

		res.applyData(&FileBlob{
			Filename: attachmentFilename(resp.Header.Get("Content-Disposition")),
			Body:     newBlobFuture(c.logger, resp.Body, release),
		})

		return res, nil
	})
}

// attachmentFilename extracts the filename parameter from a
// Content-Disposition header. Only an "attachment" disposition with a
// filename parameter yields a name; surrounding quotes are stripped by
// the mime parser.
func attachmentFilename(disposition string) string {
	if disposition == "" {
		return ""
	}

	mediaType, params, err := mime.ParseMediaType(disposition)
	if err != nil || mediaType != "attachment" {
		return ""
	}

	return params["filename"]
}
