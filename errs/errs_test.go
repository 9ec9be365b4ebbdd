package errs

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestStatusError(t *testing.T) {
	var err error = &StatusError{Method: "LOCK", URI: "http://a/b", Code: 423, Reason: "Locked"}
	wrapped := fmt.Errorf("lock file failed, err:%w", err)
	assert.True(t, IsStatus(wrapped, http.StatusLocked))
	assert.False(t, IsStatus(wrapped, http.StatusPreconditionFailed))
	code, ok := StatusCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 423, code)
	assert.False(t, IsTransport(wrapped))
}

func TestCancelNotTimeout(t *testing.T) {
	err := &TransportError{Method: "GET", URI: "http://a", Err: context.Canceled}
	assert.True(t, IsCancelled(err))
	assert.False(t, IsTimeout(err))
	assert.True(t, IsTransport(err))

	err = &TransportError{Method: "GET", URI: "http://a", Err: context.DeadlineExceeded}
	assert.False(t, IsCancelled(err))
	assert.True(t, IsTimeout(err))

	err = &TransportError{Method: "GET", URI: "http://a", Err: timeoutErr{}}
	assert.True(t, IsTimeout(err))
	assert.False(t, IsTimeout(nil))
}

func TestParseErrorKeepsBody(t *testing.T) {
	err := &ParseError{Body: []byte("<html>oops</html>"), Err: fmt.Errorf("no multistatus")}
	assert.Contains(t, err.Error(), "<html>oops</html>")
	assert.ErrorContains(t, err, "no multistatus")
}
