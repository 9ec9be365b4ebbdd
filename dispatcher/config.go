package dispatcher

import (
	"net/http"
	"time"
)

type config struct {
	BaseURI   string
	User      string
	Password  string
	Timeout   time.Duration
	UserAgent string
	Client    IHTTPClient
}

type Option func(*config)

func WithBaseURI(uri string) Option {
	return func(c *config) {
		c.BaseURI = uri
	}
}

// WithAuth enables basic auth on the transport owned by the dispatcher. It
// has no effect together with WithHTTPClient.
func WithAuth(user string, password string) Option {
	return func(c *config) {
		c.User = user
		c.Password = password
	}
}

func WithTimeout(t time.Duration) Option {
	return func(c *config) {
		c.Timeout = t
	}
}

func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.UserAgent = ua
	}
}

// WithHTTPClient hands a caller owned transport to the dispatcher. The
// dispatcher never closes it.
func WithHTTPClient(cli IHTTPClient) Option {
	return func(c *config) {
		c.Client = cli
	}
}

func newOwnedClient(c *config) *http.Client {
	var rt http.RoundTripper = &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     20 * time.Second,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 4,
	}
	if len(c.User) > 0 {
		rt = &basicAuthTransport{next: rt, user: c.User, password: c.Password}
	}
	return &http.Client{
		Timeout:   c.Timeout,
		Transport: rt,
	}
}

type basicAuthTransport struct {
	next     http.RoundTripper
	user     string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.user, t.password)
	return t.next.RoundTrip(req)
}

func (t *basicAuthTransport) CloseIdleConnections() {
	if ci, ok := t.next.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}
