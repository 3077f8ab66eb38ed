// Package apicall exposes the client builder.
package apicall

import (
	"github.com/adamwoolhether/apicall/client"
)

// NewClient instantiates a new *Client with the provided options.
// If not specified, the default http.Client and http.Transport are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}
