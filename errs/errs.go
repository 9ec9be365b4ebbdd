package errs

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/xxxsen/davkit/model"
)

var (
	ErrNoBaseURI           = errors.New("relative uri without base uri")
	ErrEmptyPropertyUpdate = errors.New("property update without set or remove")
	ErrNoActiveLock        = errors.New("no active lock in response")
)

// ConfigError is returned when a request can not be built from the client
// configuration, e.g. a relative uri while no base uri is configured.
type ConfigError struct {
	URI string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid client config, uri:%s, err:%v", e.URI, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure below HTTP: dns, connect, tls, timeout or
// cancellation. The cause stays reachable with errors.Is / errors.As.
type TransportError struct {
	Method string
	URI    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("send request failed, method:%s, uri:%s, err:%v", e.Method, e.URI, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is any answer outside 2xx. Callers branch on Code. Members is
// set when the failure came as a 207 listing per-member status, e.g. a deep
// LOCK that could not lock every member.
type StatusError struct {
	Method  string
	URI     string
	Code    int
	Reason  string
	Members []*model.ResourceNode
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code not ok, method:%s, uri:%s, code:%d, reason:%s", e.Method, e.URI, e.Code, e.Reason)
}

// ParseError means the body could not be decoded into what the verb
// promises. Body holds the raw payload for diagnosis.
type ParseError struct {
	Body []byte
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response body failed, err:%v, body:%s", e.Err, truncate(e.Body, 256))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func IsStatus(err error, code int) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == code
}

func StatusCode(err error) (int, bool) {
	var se *StatusError
	if !errors.As(err, &se) {
		return 0, false
	}
	return se.Code, true
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsCancelled reports a caller initiated cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeout reports a deadline or network timeout. A cancellation is never a
// timeout.
func IsTimeout(err error) bool {
	if err == nil || IsCancelled(err) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
