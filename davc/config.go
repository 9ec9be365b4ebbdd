package davc

import (
	"time"

	"github.com/xxxsen/davkit/dispatcher"
)

type config struct {
	baseURI   string
	user      string
	password  string
	timeout   time.Duration
	userAgent string
	client    dispatcher.IHTTPClient
}

type Option func(c *config)

func WithBaseURI(uri string) Option {
	return func(c *config) {
		c.baseURI = uri
	}
}

func WithAuth(user string, password string) Option {
	return func(c *config) {
		c.user = user
		c.password = password
	}
}

func WithTimeout(t time.Duration) Option {
	return func(c *config) {
		c.timeout = t
	}
}

func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithHTTPClient makes the client send through cli. Auth, timeout and
// Close are then up to the caller.
func WithHTTPClient(cli dispatcher.IHTTPClient) Option {
	return func(c *config) {
		c.client = cli
	}
}

func (c *config) dispatcherOptions() []dispatcher.Option {
	opts := []dispatcher.Option{
		dispatcher.WithTimeout(c.timeout),
		dispatcher.WithUserAgent(c.userAgent),
	}
	if len(c.baseURI) > 0 {
		opts = append(opts, dispatcher.WithBaseURI(c.baseURI))
	}
	if len(c.user) > 0 {
		opts = append(opts, dispatcher.WithAuth(c.user, c.password))
	}
	if c.client != nil {
		opts = append(opts, dispatcher.WithHTTPClient(c.client))
	}
	return opts
}
