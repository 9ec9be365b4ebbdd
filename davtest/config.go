package davtest

import "github.com/gin-gonic/gin"

type config struct {
	prefix string
	users  map[string]string
	hooks  map[string]gin.HandlerFunc
}

type Option func(c *config)

// WithPrefix mounts the dav tree below prefix, e.g. "/dav".
func WithPrefix(p string) Option {
	return func(c *config) {
		c.prefix = p
	}
}

// WithUser enables basic auth, users maps user => password.
func WithUser(m map[string]string) Option {
	return func(c *config) {
		c.users = m
	}
}

// WithHook answers method with fn instead of the in-memory tree. Hooks are
// how tests produce server behaviour x/net/webdav never shows.
func WithHook(method string, fn gin.HandlerFunc) Option {
	return func(c *config) {
		if c.hooks == nil {
			c.hooks = make(map[string]gin.HandlerFunc)
		}
		c.hooks[method] = fn
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
