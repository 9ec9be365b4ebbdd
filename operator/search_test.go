package operator

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

func TestSearch(t *testing.T) {
	d, rec := setupServer(t, MethodSearch, func(c *gin.Context) {
		writeXML(c, http.StatusMultiStatus, testMultistatus)
	})
	rsp, err := NewSearchOperator(d).Search(context.Background(), "", &model.SearchParameters{Keyword: "report"})
	require.NoError(t, err)
	require.Len(t, rsp.Resources, 2)
	assert.Equal(t, "/dav/a.txt", rsp.Resources[1].Href)

	_, method, path, header, body := snapshot(rec)
	assert.Equal(t, MethodSearch, method)
	assert.Equal(t, "/dav/", path)
	assert.Equal(t, "text/xml; charset=utf-8", header.Get("Content-Type"))
	assert.Contains(t, body, `<D:basicsearch>`)
	assert.Contains(t, body, `<D:literal>%report%</D:literal>`)
	assert.Contains(t, body, `<D:depth>infinity</D:depth>`)
	start := strings.Index(body, "<D:scope><D:href>") + len("<D:scope><D:href>")
	end := strings.Index(body, "</D:href><D:depth>")
	require.True(t, start > 0 && end > start)
	scope := body[start:end]
	assert.True(t, strings.HasPrefix(scope, "http://"))
	assert.True(t, strings.HasSuffix(scope, "/dav/"))
}

func TestSearchScopeAndRawBody(t *testing.T) {
	d, rec := setupServer(t, MethodSearch, func(c *gin.Context) {
		writeXML(c, http.StatusMultiStatus, `<multistatus xmlns="DAV:"/>`)
	})
	op := NewSearchOperator(d)

	_, err := op.Search(context.Background(), "", &model.SearchParameters{Scope: "/dav/books/"})
	require.NoError(t, err)
	_, _, _, _, body := snapshot(rec)
	assert.Contains(t, body, `<D:href>/dav/books/</D:href>`)
	assert.NotContains(t, body, `<D:where>`)

	raw := `<?xml version="1.0"?><d:searchrequest xmlns:d="DAV:"><d:sql>SELECT *</d:sql></d:searchrequest>`
	rsp, err := op.Search(context.Background(), "", &model.SearchParameters{Keyword: "ignored", Body: raw})
	require.NoError(t, err)
	assert.Empty(t, rsp.Resources)
	_, _, _, _, body = snapshot(rec)
	assert.Equal(t, raw, body)
}

func TestSearchUnsupported(t *testing.T) {
	d, _ := setupServer(t, MethodSearch, func(c *gin.Context) {
		c.Status(http.StatusNotImplemented)
	})
	_, err := NewSearchOperator(d).Search(context.Background(), "", nil)
	assert.True(t, errs.IsStatus(err, http.StatusNotImplemented))
}
