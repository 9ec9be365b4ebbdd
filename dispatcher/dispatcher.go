package dispatcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// IHTTPClient is the http send primitive the dispatcher is built on,
// *http.Client satisfies it.
type IHTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Request struct {
	Method      string
	URI         string
	Header      http.Header
	Body        io.Reader
	ContentType string
}

// IDispatcher sends plain http requests. It knows nothing about WebDAV.
type IDispatcher interface {
	Resolve(uri string) (*url.URL, error)
	Send(ctx context.Context, req *Request) (*http.Response, error)
	Close() error
}
