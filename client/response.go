package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ResponseType selects how an incoming body is decoded.
type ResponseType int

const (
	ResponseNone ResponseType = iota
	ResponseJSON
	ResponseText
)

func (r ResponseType) String() string {
	switch r {
	case ResponseNone:
		return "none"
	case ResponseJSON:
		return "json"
	case ResponseText:
		return "text"
	default:
		return fmt.Sprintf("response(%d)", int(r))
	}
}

// success mirrors the fetch "ok" flag.
func success(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// decodeResponse turns a raw response into a value of type T. A
// non-success status fails with a [StatusError] before any byte of the
// body is read. Exactly one branch of the response-type switch runs;
// each returns immediately. Read and parse failures surface as a
// [DecodeError].
func decodeResponse[T any](method string, rt ResponseType, resp *http.Response) (T, error) {
	var v T

	if !success(resp.StatusCode) {
		return v, &StatusError{Method: method, StatusCode: resp.StatusCode}
	}

	switch rt {
	case ResponseNone:
		return v, nil

	case ResponseText:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return v, &DecodeError{Method: method, ResponseType: rt, Err: err}
		}
		text, ok := any(string(data)).(T)
		if !ok {
			return v, &DecodeError{Method: method, ResponseType: rt, Err: fmt.Errorf("text response requires a string destination, have %T", v)}
		}
		return text, nil

	case ResponseJSON:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return v, &DecodeError{Method: method, ResponseType: rt, Err: err}
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return v, &DecodeError{Method: method, ResponseType: rt, Err: err}
		}
		return v, nil

	default:
		return v, &DecodeError{Method: method, ResponseType: rt, Err: fmt.Errorf("unknown response type")}
	}
}
