// Package davtest runs an in-memory WebDAV server for tests.
package davtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/net/webdav"
)

var AllowMethods = []string{
	http.MethodOptions,
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodDelete,
	"PROPFIND",
	"PROPPATCH",
	"MKCOL",
	"COPY",
	"MOVE",
	"LOCK",
	"UNLOCK",
	"SEARCH",
}

func init() {
	gin.SetMode(gin.TestMode)
}

// Request is what the server saw of one call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

type Server struct {
	c    *config
	srv  *httptest.Server
	dav  *webdav.Handler
	mu   sync.Mutex
	reqs []*Request
}

func New(opts ...Option) *Server {
	c := applyOpts(opts...)
	c.prefix = strings.TrimSuffix(c.prefix, "/")
	s := &Server{
		c: c,
		dav: &webdav.Handler{
			Prefix:     c.prefix,
			FileSystem: webdav.NewMemFS(),
			LockSystem: webdav.NewMemLS(),
		},
	}
	engine := gin.New()
	s.initAPI(engine.Group(c.prefix))
	s.srv = httptest.NewServer(engine)
	return s
}

func (s *Server) initAPI(router *gin.RouterGroup) {
	router.Use(s.recordMiddleware())
	if len(s.c.users) > 0 {
		router.Use(basicAuthMiddleware(s.c.users))
	}
	for _, method := range AllowMethods {
		router.Handle(method, "/*all", s.handle)
	}
}

func (s *Server) handle(c *gin.Context) {
	if fn, ok := s.c.hooks[c.Request.Method]; ok {
		fn(c)
		return
	}
	s.dav.ServeHTTP(c.Writer, c.Request)
}

func (s *Server) recordMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logutil.GetLogger(c.Request.Context()).Error("read request body failed", zap.Error(err))
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		s.mu.Lock()
		s.reqs = append(s.reqs, &Request{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Header: c.Request.Header.Clone(),
			Body:   string(raw),
		})
		s.mu.Unlock()
	}
}

// URL is the base uri of the dav tree, always ending with "/".
func (s *Server) URL() string {
	return s.srv.URL + s.c.prefix + "/"
}

func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Hits counts the requests that reached the server, rejected ones included.
func (s *Server) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}

// Last returns the latest request, an empty one when nothing arrived yet.
func (s *Server) Last() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reqs) == 0 {
		return &Request{Header: http.Header{}}
	}
	return s.reqs[len(s.reqs)-1]
}

func (s *Server) Close() {
	s.srv.Close()
}
