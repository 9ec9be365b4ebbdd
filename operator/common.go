package operator

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xxxsen/davkit/codec"
	"github.com/xxxsen/davkit/davheader"
	"github.com/xxxsen/davkit/dispatcher"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

const (
	MethodPropfind  = "PROPFIND"
	MethodProppatch = "PROPPATCH"
	MethodMkcol     = "MKCOL"
	MethodCopy      = "COPY"
	MethodMove      = "MOVE"
	MethodLock      = "LOCK"
	MethodUnlock    = "UNLOCK"
	MethodSearch    = "SEARCH"
)

const (
	StatusMultiStatus = http.StatusMultiStatus
)

// maxErrorBodySize bounds how much of a failed response is drained so the
// connection can be reused.
const maxErrorBodySize = 64 * 1024

type call struct {
	method      string
	uri         string
	params      model.RequestParameters
	header      http.Header
	body        io.Reader
	contentType string
}

func newCall(method string, uri string, params model.RequestParameters) *call {
	return &call{
		method: method,
		uri:    uri,
		params: params,
		header: http.Header{},
	}
}

func (c *call) withXMLBody(body []byte, contentType string) *call {
	if body != nil {
		c.body = bytes.NewReader(body)
	}
	c.contentType = contentType
	return c
}

func (c *call) request() *dispatcher.Request {
	h := make(http.Header, len(c.params.Headers)+len(c.header))
	for k, vs := range c.params.Headers {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	// protocol headers win over caller headers of the same name
	for k, vs := range c.header {
		h[k] = vs
	}
	contentType := c.contentType
	if len(c.params.ContentType) > 0 {
		contentType = c.params.ContentType
	}
	return &dispatcher.Request{
		Method:      c.method,
		URI:         c.uri,
		Header:      h,
		Body:        c.body,
		ContentType: contentType,
	}
}

// do sends the call and turns everything outside 2xx into a StatusError. On
// success the caller owns the response body.
func do(ctx context.Context, d dispatcher.IDispatcher, c *call) (*http.Response, error) {
	rsp, err := d.Send(ctx, c.request())
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode >= 200 && rsp.StatusCode < 300 {
		return rsp, nil
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(rsp.Body, maxErrorBodySize))
	_ = rsp.Body.Close()
	uri := c.uri
	if rsp.Request != nil && rsp.Request.URL != nil {
		uri = rsp.Request.URL.String()
	}
	return nil, &errs.StatusError{
		Method: c.method,
		URI:    uri,
		Code:   rsp.StatusCode,
		Reason: reasonPhrase(rsp),
	}
}

func reasonPhrase(rsp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(rsp.Status, strconv.Itoa(rsp.StatusCode)))
	if len(reason) > 0 {
		return reason
	}
	return http.StatusText(rsp.StatusCode)
}

func readAll(c *call, rsp *http.Response) ([]byte, error) {
	defer rsp.Body.Close()
	raw, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, &errs.TransportError{Method: c.method, URI: c.uri, Err: err}
	}
	return raw, nil
}

// doSimple runs a verb without a typed answer. A 207 body lists the members
// the server could not process.
func doSimple(ctx context.Context, d dispatcher.IDispatcher, c *call) (*model.Response, error) {
	rsp, err := do(ctx, d, c)
	if err != nil {
		return nil, err
	}
	rs := &model.Response{
		StatusCode: rsp.StatusCode,
		Header:     rsp.Header,
	}
	raw, err := readAll(c, rsp)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode != StatusMultiStatus {
		return rs, nil
	}
	nodes, err := codec.ParseMultistatus(raw)
	if err != nil {
		return nil, err
	}
	rs.Resources = nodes
	return rs, nil
}

func setIf(c *call, token string) {
	if len(token) == 0 {
		return
	}
	c.header.Set(davheader.HeaderIf, davheader.IfToken(token))
}
