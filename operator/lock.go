package operator

import (
	"context"
	"net/http"

	"github.com/xxxsen/davkit/codec"
	"github.com/xxxsen/davkit/davheader"
	"github.com/xxxsen/davkit/dispatcher"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

type lockOperator struct {
	d dispatcher.IDispatcher
}

// NewLockOperator returns an operator that keeps no lock state, every
// returned token has to be kept by the caller.
func NewLockOperator(d dispatcher.IDispatcher) ILockOperator {
	return &lockOperator{d: d}
}

func (l *lockOperator) Lock(ctx context.Context, uri string, params *model.LockParameters) (*model.LockResponse, error) {
	if params == nil {
		params = &model.LockParameters{}
	}
	body := codec.BuildLockBody(params.Scope, params.Owner)
	c := newCall(MethodLock, uri, params.RequestParameters).withXMLBody(body, davheader.ContentTypeXML)
	c.header.Set(davheader.HeaderDepth, params.ApplyTo.Depth())
	setTimeout(c, params.Timeout)
	return l.doLock(ctx, c)
}

// RefreshLock extends the lifetime of an existing lock, the request has no
// body and names the lock in the If header.
func (l *lockOperator) RefreshLock(ctx context.Context, uri string, token string, params *model.RefreshLockParameters) (*model.LockResponse, error) {
	if params == nil {
		params = &model.RefreshLockParameters{}
	}
	c := newCall(MethodLock, uri, params.RequestParameters)
	setIf(c, token)
	setTimeout(c, params.Timeout)
	rs, err := l.doLock(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(rs.Lock.Token) == 0 {
		rs.Lock.Token = token
	}
	return rs, nil
}

func (l *lockOperator) doLock(ctx context.Context, c *call) (*model.LockResponse, error) {
	rsp, err := do(ctx, l.d, c)
	if err != nil {
		return nil, err
	}
	raw, err := readAll(c, rsp)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode == StatusMultiStatus {
		return nil, lockFailure(c, rsp, raw)
	}
	locks, err := codec.ParseLockDiscovery(raw)
	if err != nil {
		return nil, err
	}
	headerToken := davheader.ParseLockToken(rsp.Header.Get(davheader.HeaderLockToken))
	lock := pickLock(locks, headerToken)
	if len(lock.Token) == 0 {
		lock.Token = headerToken
	}
	return &model.LockResponse{
		StatusCode: rsp.StatusCode,
		Lock:       lock,
	}, nil
}

// lockFailure turns a 207 LOCK answer into a StatusError. The server grants
// no lock at all when any member fails, the code is the first failed member
// status.
func lockFailure(c *call, rsp *http.Response, raw []byte) error {
	members, err := codec.ParseMultistatus(raw)
	if err != nil {
		return err
	}
	code := StatusMultiStatus
	for _, m := range members {
		if m.Status != 0 && (m.Status < 200 || m.Status >= 300) {
			code = m.Status
			break
		}
	}
	uri := c.uri
	if rsp.Request != nil && rsp.Request.URL != nil {
		uri = rsp.Request.URL.String()
	}
	return &errs.StatusError{
		Method:  c.method,
		URI:     uri,
		Code:    code,
		Reason:  http.StatusText(code),
		Members: members,
	}
}

// pickLock returns the activelock named by the Lock-Token header. A shared
// lock answer may list locks of other owners too.
func pickLock(locks []*model.LockInfo, token string) *model.LockInfo {
	if len(token) > 0 {
		for _, l := range locks {
			if l.Token == token {
				return l
			}
		}
	}
	return locks[0]
}

func (l *lockOperator) Unlock(ctx context.Context, uri string, token string, params *model.UnlockParameters) (*model.Response, error) {
	if params == nil {
		params = &model.UnlockParameters{}
	}
	c := newCall(MethodUnlock, uri, params.RequestParameters)
	c.header.Set(davheader.HeaderLockToken, davheader.LockToken(token))
	return doSimple(ctx, l.d, c)
}

func setTimeout(c *call, t model.LockTimeout) {
	v, ok := davheader.Timeout(t)
	if !ok {
		return
	}
	c.header.Set(davheader.HeaderTimeout, v)
}
