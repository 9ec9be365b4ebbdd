package dispatcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davkit/errs"
	"go.uber.org/zap"
)

type defaultDispatcher struct {
	c      *config
	base   *url.URL
	client IHTTPClient
	owned  *http.Client
}

func New(opts ...Option) (IDispatcher, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	d := &defaultDispatcher{c: c}
	if len(c.BaseURI) > 0 {
		base, err := parseBaseURI(c.BaseURI)
		if err != nil {
			return nil, err
		}
		d.base = base
	}
	if c.Client != nil {
		d.client = c.Client
		return d, nil
	}
	d.owned = newOwnedClient(c)
	d.client = d.owned
	return d, nil
}

// parseBaseURI makes sure relative uris resolve below the base path, so
// "http://h/dav" + "a.txt" becomes "http://h/dav/a.txt".
func parseBaseURI(uri string) (*url.URL, error) {
	base, err := url.Parse(uri)
	if err != nil {
		return nil, &errs.ConfigError{URI: uri, Err: err}
	}
	if !base.IsAbs() || len(base.Host) == 0 {
		return nil, &errs.ConfigError{URI: uri, Err: fmt.Errorf("base uri must be absolute")}
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		if len(base.RawPath) > 0 {
			base.RawPath += "/"
		}
	}
	return base, nil
}

func (d *defaultDispatcher) Resolve(uri string) (*url.URL, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, &errs.ConfigError{URI: uri, Err: err}
	}
	if u.IsAbs() {
		return u, nil
	}
	if d.base == nil {
		return nil, &errs.ConfigError{URI: uri, Err: errs.ErrNoBaseURI}
	}
	return d.base.ResolveReference(u), nil
}

func (d *defaultDispatcher) Send(ctx context.Context, req *Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &errs.TransportError{Method: req.Method, URI: req.URI, Err: err}
	}
	u, err := d.Resolve(req.URI)
	if err != nil {
		return nil, err
	}
	target := u.String()
	hreq, err := http.NewRequestWithContext(ctx, req.Method, target, req.Body)
	if err != nil {
		return nil, &errs.ConfigError{URI: target, Err: err}
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	if len(req.ContentType) > 0 {
		hreq.Header.Set("Content-Type", req.ContentType)
	}
	if len(d.c.UserAgent) > 0 && len(hreq.Header.Get("User-Agent")) == 0 {
		hreq.Header.Set("User-Agent", d.c.UserAgent)
	}
	start := time.Now()
	rsp, err := d.client.Do(hreq)
	if err != nil {
		logutil.GetLogger(ctx).Error("send request failed", zap.String("method", req.Method), zap.String("uri", target), zap.Duration("cost", time.Since(start)), zap.Error(err))
		return nil, &errs.TransportError{Method: req.Method, URI: target, Err: err}
	}
	logutil.GetLogger(ctx).Debug("send request finish", zap.String("method", req.Method), zap.String("uri", target), zap.Int("status", rsp.StatusCode), zap.Duration("cost", time.Since(start)))
	return rsp, nil
}

func (d *defaultDispatcher) Close() error {
	if d.owned != nil {
		d.owned.CloseIdleConnections()
	}
	return nil
}
