package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// PayloadType selects how an outgoing body is encoded and which
// Content-Type header, if any, is attached.
type PayloadType int

const (
	PayloadNone PayloadType = iota
	PayloadJSON
	PayloadURLEncoded
	PayloadMultipart
)

func (p PayloadType) String() string {
	switch p {
	case PayloadNone:
		return "none"
	case PayloadJSON:
		return "application/json"
	case PayloadURLEncoded:
		return "application/x-www-form-urlencoded"
	case PayloadMultipart:
		return "multipart/form-data"
	default:
		return fmt.Sprintf("payload(%d)", int(p))
	}
}

// contentType reports the Content-Type header value the payload type
// requires, or "" when none should be set. Multipart deliberately
// returns "" here: the boundary-bearing value comes from the encoder.
func (p PayloadType) contentType() string {
	switch p {
	case PayloadJSON:
		return "application/json"
	case PayloadURLEncoded:
		return "application/x-www-form-urlencoded"
	default:
		return ""
	}
}

// buildRequestHeaders produces the header set for a request. The
// supplied headers are copied, never mutated, so two calls with the
// same inputs yield equal but independent sets.
func buildRequestHeaders(p PayloadType, supplied http.Header) http.Header {
	headers := make(http.Header, len(supplied)+1)
	for k, v := range supplied {
		headers[k] = slices.Clone(v)
	}

	if ct := p.contentType(); ct != "" {
		headers.Set("Content-Type", ct)
	}

	return headers
}

// FilePart is a single file entry in a [MultipartPayload].
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// MultipartPayload carries the fields and files of a
// multipart/form-data request body.
type MultipartPayload struct {
	Fields map[string]string
	Files  []FilePart
}

// encodePayload converts payload into a wire-ready body. The returned
// content type is non-empty only for multipart bodies, whose boundary
// is generated during encoding.
func encodePayload(payload any, p PayloadType) (io.Reader, string, error) {
	switch p {
	case PayloadJSON:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", &EncodeError{PayloadType: p, Err: err}
		}
		return bytes.NewReader(data), "", nil

	case PayloadURLEncoded:
		form, ok := payload.(map[string]string)
		if !ok {
			return nil, "", &EncodeError{PayloadType: p, Err: fmt.Errorf("expected map[string]string, got %T", payload)}
		}
		return strings.NewReader(encodeForm(form)), "", nil

	case PayloadMultipart:
		form, ok := payload.(MultipartPayload)
		if !ok {
			return nil, "", &EncodeError{PayloadType: p, Err: fmt.Errorf("expected MultipartPayload, got %T", payload)}
		}
		return encodeMultipart(form)

	default:
		return nil, "", &EncodeError{PayloadType: p, Err: fmt.Errorf("payload type carries no body")}
	}
}

// encodeForm serializes a flat string map as key=value pairs joined
// with "&". Values are percent-encoded with %20 for spaces; keys are
// intentionally left as-is, so callers must supply URL-safe keys.
// Keys are emitted in sorted order for a deterministic wire format.
func encodeForm(form map[string]string) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+escapeFormValue(form[k]))
	}

	return strings.Join(pairs, "&")
}

// escapeFormValue percent-encodes v, using %20 rather than "+" for
// spaces.
func escapeFormValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// encodeMultipart builds a multipart/form-data body and returns it
// with its boundary-bearing content type.
func encodeMultipart(form MultipartPayload) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fieldNames := make([]string, 0, len(form.Fields))
	for name := range form.Fields {
		fieldNames = append(fieldNames, name)
	}
	slices.Sort(fieldNames)

	for _, name := range fieldNames {
		if err := writer.WriteField(name, form.Fields[name]); err != nil {
			return nil, "", &EncodeError{PayloadType: PayloadMultipart, Err: err}
		}
	}

	for _, file := range form.Files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", &EncodeError{PayloadType: PayloadMultipart, Err: err}
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", &EncodeError{PayloadType: PayloadMultipart, Err: err}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", &EncodeError{PayloadType: PayloadMultipart, Err: err}
	}

	return body, writer.FormDataContentType(), nil
}
