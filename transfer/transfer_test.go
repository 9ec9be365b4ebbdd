package transfer

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davkit/davc"
	"github.com/xxxsen/davkit/davtest"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
)

func setupTransfer(t *testing.T, srv *davtest.Server, opts ...Option) (*Transfer, *davc.Client) {
	t.Cleanup(srv.Close)
	cli, err := davc.New(davc.WithBaseURI(srv.URL()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = cli.Close()
	})
	tr, err := New(append([]Option{WithClient(cli), WithThread(2)}, opts...)...)
	require.NoError(t, err)
	return tr, cli
}

func TestNewWithoutClient(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	tr, cli := setupTransfer(t, davtest.New(), WithRaw(true))
	src := t.TempDir()
	files := map[string]string{
		"a.txt":  "hello world",
		"b.json": `{"k":"v"}`,
		"c.txt":  "third",
	}
	remotes := make([]string, 0, len(files))
	for name, data := range files {
		local := filepath.Join(src, name)
		require.NoError(t, os.WriteFile(local, []byte(data), 0644))
		require.NoError(t, tr.Upload(ctx, local, name, "", ""))
		remotes = append(remotes, name)
	}

	rsp, err := cli.Property().Propfind(ctx, "b.json", &model.PropfindParameters{ApplyTo: model.PropfindApplyToResource})
	require.NoError(t, err)
	require.Len(t, rsp.Resources, 1)
	assert.Equal(t, int64(len(files["b.json"])), rsp.Resources[0].ContentLength)

	dst := t.TempDir()
	require.NoError(t, tr.Download(ctx, remotes, dst))
	for name, data := range files {
		raw, err := os.ReadFile(filepath.Join(dst, name))
		require.NoError(t, err)
		assert.Equal(t, data, string(raw))
	}
}

func TestUploadDirectory(t *testing.T) {
	srv := davtest.New()
	tr, _ := setupTransfer(t, srv)
	err := tr.Upload(context.Background(), t.TempDir(), "x", "", "")
	assert.Error(t, err)
	assert.Equal(t, 0, srv.Hits())
}

func TestStatusErrorNotRetried(t *testing.T) {
	srv := davtest.New(davtest.WithHook(http.MethodGet, func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	}))
	tr, _ := setupTransfer(t, srv)
	err := tr.Download(context.Background(), []string{"missing.txt"}, t.TempDir())
	require.Error(t, err)
	assert.True(t, errs.IsStatus(err, http.StatusNotFound))
	assert.Equal(t, 1, srv.Hits())
}

func TestUploadContentType(t *testing.T) {
	srv := davtest.New(davtest.WithHook(http.MethodPut, func(c *gin.Context) {
		c.Status(http.StatusCreated)
	}))
	tr, _ := setupTransfer(t, srv)
	local := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(local, []byte(`{"a":1}`), 0644))

	require.NoError(t, tr.Upload(context.Background(), local, "a.json", "", ""))
	assert.Equal(t, "application/json", srv.Last().Header.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, srv.Last().Body)

	require.NoError(t, tr.Upload(context.Background(), local, "a.json", "text/plain", ""))
	assert.Equal(t, "text/plain", srv.Last().Header.Get("Content-Type"))
}
