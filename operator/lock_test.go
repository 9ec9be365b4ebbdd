package operator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

func activeLock(scope string, token string, timeout string) string {
	return fmt.Sprintf(`<D:activelock>
<D:locktype><D:write/></D:locktype>
<D:lockscope><D:%s/></D:lockscope>
<D:depth>infinity</D:depth>
<D:owner><D:href>mailto:reader@example.com</D:href></D:owner>
<D:timeout>%s</D:timeout>
<D:locktoken><D:href>%s</D:href></D:locktoken>
<D:lockroot><D:href>/dav/a.txt</D:href></D:lockroot>
</D:activelock>`, scope, timeout, token)
}

func lockBody(locks ...string) string {
	rs := `<?xml version="1.0" encoding="utf-8"?><D:prop xmlns:D="DAV:"><D:lockdiscovery>`
	for _, l := range locks {
		rs += l
	}
	return rs + `</D:lockdiscovery></D:prop>`
}

func TestLock(t *testing.T) {
	token := "urn:uuid:" + uuid.NewString()
	d, rec := setupServer(t, MethodLock, func(c *gin.Context) {
		c.Header("Lock-Token", "<"+token+">")
		writeXML(c, http.StatusOK, lockBody(activeLock("exclusive", token, "Second-3600")))
	})
	rsp, err := NewLockOperator(d).Lock(context.Background(), "a.txt", &model.LockParameters{
		Timeout: model.LockTimeoutOf(time.Hour),
		Owner:   model.HrefOwner("mailto:reader@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rsp.StatusCode)
	require.NotNil(t, rsp.Lock)
	assert.Equal(t, token, rsp.Lock.Token)
	assert.Equal(t, model.LockScopeExclusive, rsp.Lock.Scope)
	assert.Equal(t, model.LockApplyToResourceAndDescendants, rsp.Lock.Depth)
	assert.Equal(t, model.LockTimeoutOf(time.Hour), rsp.Lock.Timeout)
	assert.Equal(t, "mailto:reader@example.com", rsp.Lock.Owner.Value)
	assert.True(t, rsp.Lock.Owner.IsHref)
	assert.Equal(t, "/dav/a.txt", rsp.Lock.Root)

	_, method, _, header, body := snapshot(rec)
	assert.Equal(t, MethodLock, method)
	assert.Equal(t, "infinity", header.Get("Depth"))
	assert.Equal(t, "Second-3600", header.Get("Timeout"))
	assert.Equal(t, "application/xml; charset=utf-8", header.Get("Content-Type"))
	assert.Contains(t, body, `<D:lockscope><D:exclusive/></D:lockscope>`)
	assert.Contains(t, body, `<D:owner><D:href>mailto:reader@example.com</D:href></D:owner>`)
}

func TestLockHeaders(t *testing.T) {
	d, rec := setupServer(t, MethodLock, func(c *gin.Context) {
		writeXML(c, http.StatusOK, lockBody(activeLock("shared", "tok", "Infinite")))
	})
	op := NewLockOperator(d)
	testList := []struct {
		params  *model.LockParameters
		depth   string
		timeout string
	}{
		{nil, "infinity", ""},
		{&model.LockParameters{ApplyTo: model.LockApplyToResource}, "0", ""},
		{&model.LockParameters{Timeout: model.InfiniteLockTimeout}, "infinity", "Infinite"},
		{&model.LockParameters{Timeout: model.LockTimeoutOf(90 * time.Second), Scope: model.LockScopeShared}, "infinity", "Second-90"},
	}
	for _, item := range testList {
		rsp, err := op.Lock(context.Background(), "a.txt", item.params)
		require.NoError(t, err)
		assert.Equal(t, model.LockScopeShared, rsp.Lock.Scope)
		assert.True(t, rsp.Lock.Timeout.IsInfinite())
		_, _, _, header, _ := snapshot(rec)
		assert.Equal(t, item.depth, header.Get("Depth"))
		assert.Equal(t, item.timeout, header.Get("Timeout"))
	}
}

func TestLockPicksHeaderToken(t *testing.T) {
	d, _ := setupServer(t, MethodLock, func(c *gin.Context) {
		c.Header("Lock-Token", "<tok-mine>")
		writeXML(c, http.StatusOK, lockBody(
			activeLock("shared", "tok-other", "Second-60"),
			activeLock("shared", "tok-mine", "Second-120"),
		))
	})
	rsp, err := NewLockOperator(d).Lock(context.Background(), "a.txt", &model.LockParameters{Scope: model.LockScopeShared})
	require.NoError(t, err)
	assert.Equal(t, "tok-mine", rsp.Lock.Token)
	assert.Equal(t, model.LockTimeoutOf(120*time.Second), rsp.Lock.Timeout)
}

func TestLockTokenOnlyInHeader(t *testing.T) {
	d, _ := setupServer(t, MethodLock, func(c *gin.Context) {
		c.Header("Lock-Token", "<tok-header>")
		writeXML(c, http.StatusCreated, lockBody(`<D:activelock><D:lockscope><D:exclusive/></D:lockscope><D:depth>0</D:depth></D:activelock>`))
	})
	rsp, err := NewLockOperator(d).Lock(context.Background(), "new.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rsp.StatusCode)
	assert.Equal(t, "tok-header", rsp.Lock.Token)
	assert.Equal(t, model.LockApplyToResource, rsp.Lock.Depth)
	assert.True(t, rsp.Lock.Timeout.IsServerDefault())
}

func TestLockWithoutActiveLock(t *testing.T) {
	d, _ := setupServer(t, MethodLock, func(c *gin.Context) {
		writeXML(c, http.StatusOK, lockBody())
	})
	_, err := NewLockOperator(d).Lock(context.Background(), "a.txt", nil)
	require.Error(t, err)
	var pe *errs.ParseError
	assert.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, errs.ErrNoActiveLock)
}

func TestLockConflict(t *testing.T) {
	d, _ := setupServer(t, MethodLock, func(c *gin.Context) {
		c.Status(http.StatusLocked)
	})
	_, err := NewLockOperator(d).Lock(context.Background(), "a.txt", nil)
	assert.True(t, errs.IsStatus(err, http.StatusLocked))
}

func TestRefreshLock(t *testing.T) {
	d, rec := setupServer(t, MethodLock, func(c *gin.Context) {
		writeXML(c, http.StatusOK, lockBody(`<D:activelock><D:lockscope><D:exclusive/></D:lockscope><D:timeout>Second-600</D:timeout></D:activelock>`))
	})
	rsp, err := NewLockOperator(d).RefreshLock(context.Background(), "a.txt", "tok-1", &model.RefreshLockParameters{
		Timeout: model.LockTimeoutOf(10 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", rsp.Lock.Token)
	assert.Equal(t, model.LockTimeoutOf(10*time.Minute), rsp.Lock.Timeout)
	_, method, _, header, body := snapshot(rec)
	assert.Equal(t, MethodLock, method)
	assert.Equal(t, "(<tok-1>)", header.Get("If"))
	assert.Equal(t, "Second-600", header.Get("Timeout"))
	assert.Empty(t, header.Get("Depth"))
	assert.Empty(t, body)
}

func TestRefreshLockPreconditionFailed(t *testing.T) {
	d, _ := setupServer(t, MethodLock, func(c *gin.Context) {
		c.Status(http.StatusPreconditionFailed)
	})
	_, err := NewLockOperator(d).RefreshLock(context.Background(), "a.txt", "stale", nil)
	assert.True(t, errs.IsStatus(err, http.StatusPreconditionFailed))
}

func TestUnlock(t *testing.T) {
	d, rec := setupServer(t, MethodUnlock, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	rsp, err := NewLockOperator(d).Unlock(context.Background(), "a.txt", "urn:uuid:42", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rsp.StatusCode)
	_, method, _, header, _ := snapshot(rec)
	assert.Equal(t, MethodUnlock, method)
	assert.Equal(t, "<urn:uuid:42>", header.Get("Lock-Token"))
	assert.Empty(t, header.Get("If"))
}

func TestUnlockWrongToken(t *testing.T) {
	d, _ := setupServer(t, MethodUnlock, func(c *gin.Context) {
		c.Status(http.StatusConflict)
	})
	_, err := NewLockOperator(d).Unlock(context.Background(), "a.txt", "urn:uuid:bad", nil)
	assert.True(t, errs.IsStatus(err, http.StatusConflict))
}

func TestLockMultiStatusFailure(t *testing.T) {
	d, _ := setupServer(t, MethodLock, func(c *gin.Context) {
		writeXML(c, http.StatusMultiStatus, `<?xml version="1.0" encoding="utf-8"?>
<D:multistatus xmlns:D="DAV:">
  <D:response>
    <D:href>/dav/books/</D:href>
    <D:status>HTTP/1.1 424 Failed Dependency</D:status>
  </D:response>
  <D:response>
    <D:href>/dav/books/secret.txt</D:href>
    <D:status>HTTP/1.1 403 Forbidden</D:status>
  </D:response>
</D:multistatus>`)
	})
	rsp, err := NewLockOperator(d).Lock(context.Background(), "books/", nil)
	assert.Nil(t, rsp)
	require.Error(t, err)
	var se *errs.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, MethodLock, se.Method)
	assert.Equal(t, http.StatusFailedDependency, se.Code)
	assert.True(t, errs.IsStatus(err, http.StatusFailedDependency))
	require.Len(t, se.Members, 2)
	assert.Equal(t, "/dav/books/secret.txt", se.Members[1].Href)
	assert.Equal(t, http.StatusForbidden, se.Members[1].Status)
	var pe *errs.ParseError
	assert.False(t, errors.As(err, &pe))
}

func TestLockMultiStatusWithoutFailedMember(t *testing.T) {
	d, _ := setupServer(t, MethodLock, func(c *gin.Context) {
		writeXML(c, http.StatusMultiStatus, `<D:multistatus xmlns:D="DAV:"/>`)
	})
	_, err := NewLockOperator(d).Lock(context.Background(), "books/", nil)
	assert.True(t, errs.IsStatus(err, http.StatusMultiStatus))
}
