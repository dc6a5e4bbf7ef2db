package lmstudio

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Kind is the closed set of transport failure classes. Every error leaving
// this package is an *Error carrying one of these kinds so the caller can
// map it to a user-facing message without inspecting error strings.
type Kind int

const (
	// KindProtocol covers bad status codes, malformed bodies and missing
	// response fields.
	KindProtocol Kind = iota

	// KindConnection means the server was unreachable (refused, DNS, reset).
	KindConnection

	// KindTimeout means the request exceeded its deadline.
	KindTimeout

	// KindBinding covers failures inside the SDK binding.
	KindBinding
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindBinding:
		return "binding"
	default:
		return "protocol"
	}
}

// Error is a classified transport failure. Addr is the server address the
// request was sent to.
type Error struct {
	Kind Kind
	Addr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lmstudio %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure class from err, defaulting to KindProtocol
// for anything the transports did not classify.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindProtocol
}

// classifyTransport sorts an http.Client error into timeout vs connection
// failures. client.Do wraps everything in *url.Error; a non-timeout
// url.Error means the server could not be reached.
func classifyTransport(err error, addr string) *Error {
	var uerr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Addr: addr, Err: err}
	case errors.As(err, &uerr) && uerr.Timeout():
		return &Error{Kind: KindTimeout, Addr: addr, Err: err}
	case errors.As(err, &uerr):
		return &Error{Kind: KindConnection, Addr: addr, Err: err}
	default:
		return &Error{Kind: KindProtocol, Addr: addr, Err: err}
	}
}
