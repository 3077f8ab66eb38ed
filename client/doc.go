// Package client implements a typed request facade over [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// # Making Requests
//
// Every verb operation starts the request in its own goroutine and
// returns a [Handle]. Wait for the timing-annotated [Result]:
//
//	h := client.Get[user](ctx, c, "https://api.example.com/v1/users/1", nil)
//	res, err := h.Wait()
//	// res.Data, res.InitiatedAt, res.CompletedAt, res.Duration
//
// A pending handle can be cancelled at any time; [SafeCancel] clears a
// stored handle reference regardless of its state:
//
//	h = client.SafeCancel(h)
//
// # Downloading Files
//
// [DownloadFile] resolves as soon as response headers arrive, carrying
// the filename from the Content-Disposition header and a [BlobFuture]
// that buffers the raw bytes independently:
//
//	h := client.DownloadFile(ctx, c, "https://example.com/report", nil)
//	res, err := h.Wait()
//	data, err := res.Data.Body.Wait()
package client
