package transfer

import "github.com/xxxsen/davkit/davc"

type config struct {
	Thread int
	Client *davc.Client
	Raw    bool
}

type Option func(*config)

func WithClient(cli *davc.Client) Option {
	return func(c *config) {
		c.Client = cli
	}
}

func WithThread(t int) Option {
	return func(c *config) {
		c.Thread = t
	}
}

// WithRaw makes downloads ask for the stored bytes (Translate: f).
func WithRaw(v bool) Option {
	return func(c *config) {
		c.Raw = v
	}
}
