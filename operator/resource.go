package operator

import (
	"context"
	"net/http"
	"strings"

	"github.com/xxxsen/davkit/davheader"
	"github.com/xxxsen/davkit/dispatcher"
	"github.com/xxxsen/davkit/model"
)

type resourceOperator struct {
	d dispatcher.IDispatcher
}

func NewResourceOperator(d dispatcher.IDispatcher) IResourceOperator {
	return &resourceOperator{d: d}
}

func (r *resourceOperator) Mkcol(ctx context.Context, uri string, params *model.MkcolParameters) (*model.Response, error) {
	if params == nil {
		params = &model.MkcolParameters{}
	}
	c := newCall(MethodMkcol, uri, params.RequestParameters)
	setIf(c, params.LockToken)
	return doSimple(ctx, r.d, c)
}

func (r *resourceOperator) Delete(ctx context.Context, uri string, params *model.DeleteParameters) (*model.Response, error) {
	if params == nil {
		params = &model.DeleteParameters{}
	}
	c := newCall(http.MethodDelete, uri, params.RequestParameters)
	setIf(c, params.LockToken)
	return doSimple(ctx, r.d, c)
}

func (r *resourceOperator) Copy(ctx context.Context, src string, dst string, params *model.CopyParameters) (*model.Response, error) {
	if params == nil {
		params = &model.CopyParameters{}
	}
	c := newCall(MethodCopy, src, params.RequestParameters)
	if err := r.setTransfer(c, src, dst, params.ApplyTo, params.Overwrite, params.SourceLockToken, params.DestLockToken); err != nil {
		return nil, err
	}
	return doSimple(ctx, r.d, c)
}

func (r *resourceOperator) Move(ctx context.Context, src string, dst string, params *model.MoveParameters) (*model.Response, error) {
	if params == nil {
		params = &model.MoveParameters{}
	}
	c := newCall(MethodMove, src, params.RequestParameters)
	if err := r.setTransfer(c, src, dst, params.ApplyTo, params.Overwrite, params.SourceLockToken, params.DestLockToken); err != nil {
		return nil, err
	}
	return doSimple(ctx, r.d, c)
}

// setTransfer fills the headers shared by COPY and MOVE. A destination token
// needs a tagged If list, the source token then gets tagged as well.
func (r *resourceOperator) setTransfer(c *call, src string, dst string, applyTo model.CopyApplyTo, overwrite bool, srcToken string, dstToken string) error {
	dstURI, err := r.d.Resolve(dst)
	if err != nil {
		return err
	}
	c.header.Set(davheader.HeaderDestination, dstURI.String())
	c.header.Set(davheader.HeaderOverwrite, davheader.Overwrite(overwrite))
	c.header.Set(davheader.HeaderDepth, applyTo.Depth())
	if len(dstToken) == 0 {
		setIf(c, srcToken)
		return nil
	}
	lists := make([]string, 0, 2)
	if len(srcToken) > 0 {
		srcURI, err := r.d.Resolve(src)
		if err != nil {
			return err
		}
		lists = append(lists, davheader.TaggedIf(srcURI.String(), srcToken))
	}
	lists = append(lists, davheader.TaggedIf(dstURI.String(), dstToken))
	c.header.Set(davheader.HeaderIf, strings.Join(lists, " "))
	return nil
}

func (r *resourceOperator) Options(ctx context.Context, uri string, params *model.OptionsParameters) (*model.OptionsResponse, error) {
	if params == nil {
		params = &model.OptionsParameters{}
	}
	c := newCall(http.MethodOptions, uri, params.RequestParameters)
	rsp, err := do(ctx, r.d, c)
	if err != nil {
		return nil, err
	}
	if _, err := readAll(c, rsp); err != nil {
		return nil, err
	}
	return &model.OptionsResponse{
		StatusCode: rsp.StatusCode,
		DAV:        davheader.SplitList(rsp.Header.Values(davheader.HeaderDAV)),
		Allow:      davheader.SplitList(rsp.Header.Values(davheader.HeaderAllow)),
	}, nil
}
