package operator

import (
	"context"
	"io"
	"net/http"

	"github.com/xxxsen/davkit/codec"
	"github.com/xxxsen/davkit/davheader"
	"github.com/xxxsen/davkit/dispatcher"
	"github.com/xxxsen/davkit/model"
)

const (
	defaultPutContentType = "application/octet-stream"
)

type fileOperator struct {
	d dispatcher.IDispatcher
}

func NewFileOperator(d dispatcher.IDispatcher) IFileOperator {
	return &fileOperator{d: d}
}

func (f *fileOperator) GetRawFile(ctx context.Context, uri string, params *model.GetFileParameters) (*model.FileResponse, error) {
	return f.get(ctx, uri, params, true)
}

func (f *fileOperator) GetProcessedFile(ctx context.Context, uri string, params *model.GetFileParameters) (*model.FileResponse, error) {
	return f.get(ctx, uri, params, false)
}

// get returns the body unread, the caller must close the FileResponse.
func (f *fileOperator) get(ctx context.Context, uri string, params *model.GetFileParameters, raw bool) (*model.FileResponse, error) {
	if params == nil {
		params = &model.GetFileParameters{}
	}
	c := newCall(http.MethodGet, uri, params.RequestParameters)
	if raw {
		c.header.Set(davheader.HeaderTranslate, "f")
	}
	rsp, err := do(ctx, f.d, c)
	if err != nil {
		return nil, err
	}
	rs := &model.FileResponse{
		StatusCode:    rsp.StatusCode,
		ContentLength: rsp.ContentLength,
		ContentType:   rsp.Header.Get(davheader.HeaderContentType),
		ETag:          rsp.Header.Get(davheader.HeaderETag),
		Body:          rsp.Body,
	}
	if t, ok := codec.ParseDate(rsp.Header.Get(davheader.HeaderLastMod)); ok {
		rs.LastModified = t
	}
	return rs, nil
}

// PutFile streams r to uri. The request body is application/octet-stream
// unless params carry a content type.
func (f *fileOperator) PutFile(ctx context.Context, uri string, r io.Reader, params *model.PutFileParameters) (*model.Response, error) {
	if params == nil {
		params = &model.PutFileParameters{}
	}
	c := newCall(http.MethodPut, uri, params.RequestParameters)
	c.body = r
	c.contentType = defaultPutContentType
	setIf(c, params.LockToken)
	return doSimple(ctx, f.d, c)
}
