package davc

import (
	"fmt"
	"net/url"

	"github.com/xxxsen/davkit/dispatcher"
	"github.com/xxxsen/davkit/operator"
)

const (
	defaultUserAgent = "davkit/1.0"
)

// Client bundles the operators over one dispatcher. It keeps no protocol
// state, so one Client may serve concurrent calls.
type Client struct {
	d        dispatcher.IDispatcher
	property operator.IPropertyOperator
	resource operator.IResourceOperator
	file     operator.IFileOperator
	lock     operator.ILockOperator
	search   operator.ISearchOperator
}

func New(opts ...Option) (*Client, error) {
	c := &config{
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	d, err := dispatcher.New(c.dispatcherOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create dispatcher failed, err:%w", err)
	}
	return &Client{
		d:        d,
		property: operator.NewPropertyOperator(d),
		resource: operator.NewResourceOperator(d),
		file:     operator.NewFileOperator(d),
		lock:     operator.NewLockOperator(d),
		search:   operator.NewSearchOperator(d),
	}, nil
}

func (c *Client) Property() operator.IPropertyOperator {
	return c.property
}

func (c *Client) Resource() operator.IResourceOperator {
	return c.resource
}

func (c *Client) File() operator.IFileOperator {
	return c.file
}

func (c *Client) Lock() operator.ILockOperator {
	return c.lock
}

func (c *Client) Search() operator.ISearchOperator {
	return c.search
}

// Resolve returns the absolute uri a relative one is sent to.
func (c *Client) Resolve(uri string) (*url.URL, error) {
	return c.d.Resolve(uri)
}

// Close releases idle connections of a self managed transport. A transport
// given by WithHTTPClient is left alone.
func (c *Client) Close() error {
	return c.d.Close()
}
