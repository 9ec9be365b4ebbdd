package model

import (
	"io"
	"net/http"
	"time"
)

type PropfindResponse struct {
	StatusCode int
	// Resources keeps server document order, the first entry is the
	// requested resource itself.
	Resources []*ResourceNode
}

type ProppatchResponse struct {
	StatusCode int
	Href       string
	Properties map[PropertyName]int
}

// Response is the result of verbs that carry no typed body. When the server
// answers 207 (e.g. a DELETE that failed on some members) the members are
// decoded into Resources.
type Response struct {
	StatusCode int
	Header     http.Header
	Resources  []*ResourceNode
}

type FileResponse struct {
	StatusCode    int
	ContentLength int64
	ContentType   string
	ETag          string
	LastModified  time.Time
	Body          io.ReadCloser
}

func (r *FileResponse) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

type LockResponse struct {
	StatusCode int
	Lock       *LockInfo
}

type OptionsResponse struct {
	StatusCode int
	DAV        []string
	Allow      []string
}

func (r *OptionsResponse) SupportsClass(class string) bool {
	for _, c := range r.DAV {
		if c == class {
			return true
		}
	}
	return false
}
