package httpapi

import (
	"encoding/json"
	"fmt"
)

// NetworkErrorKind classifies transport-level failures.
type NetworkErrorKind string

const (
	KindUnreachable NetworkErrorKind = "unreachable"
	KindTimeout     NetworkErrorKind = "timeout"
	KindCanceled    NetworkErrorKind = "canceled"
)

// NetworkError reports a failure before any HTTP response was received:
// DNS failures, refused connections, timeouts and canceled requests.
type NetworkError struct {
	Kind NetworkErrorKind
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error (%s): %v", e.Kind, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx HTTP response. The raw body is kept for
// diagnostic surfacing by the caller.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, excerpt(e.Body))
}

// DecodeError reports a payload that could not be decoded into the expected
// shape. Size and Excerpt describe the offending payload.
type DecodeError struct {
	Size    int
	Excerpt string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error (%d bytes): %v: %s", e.Size, e.Err, e.Excerpt)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UpstreamError reports an API-level failure flag in an otherwise successful
// HTTP response, carrying the provider's own code and message.
type UpstreamError struct {
	Code int
	Info string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Code, e.Info)
}

const excerptLimit = 256

func excerpt(body []byte) string {
	if len(body) <= excerptLimit {
		return string(body)
	}
	return string(body[:excerptLimit]) + "..."
}

// Decode unmarshals a JSON payload into T. Field matching is
// case-insensitive and missing fields keep their zero values, so partial
// upstream responses decode without error. A malformed payload yields a
// DecodeError with a bounded excerpt.
func Decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, &DecodeError{
			Size:    len(body),
			Excerpt: excerpt(body),
			Err:     err,
		}
	}
	return v, nil
}
