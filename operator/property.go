package operator

import (
	"context"
	"fmt"

	"github.com/xxxsen/davkit/codec"
	"github.com/xxxsen/davkit/davheader"
	"github.com/xxxsen/davkit/dispatcher"
	"github.com/xxxsen/davkit/model"
)

type propertyOperator struct {
	d dispatcher.IDispatcher
}

func NewPropertyOperator(d dispatcher.IDispatcher) IPropertyOperator {
	return &propertyOperator{d: d}
}

// Propfind always sends an explicit Depth, "1" unless the caller picks
// another PropfindApplyTo. Any 2xx body is decoded as multistatus.
func (p *propertyOperator) Propfind(ctx context.Context, uri string, params *model.PropfindParameters) (*model.PropfindResponse, error) {
	if params == nil {
		params = &model.PropfindParameters{}
	}
	body, err := codec.BuildPropfindBody(params.RequestType, params.Properties, params.Namespaces)
	if err != nil {
		return nil, fmt.Errorf("build propfind body failed, err:%w", err)
	}
	c := newCall(MethodPropfind, uri, params.RequestParameters).withXMLBody(body, davheader.ContentTypeXML)
	c.header.Set(davheader.HeaderDepth, params.ApplyTo.Depth())
	return doMultistatus(ctx, p.d, c)
}

func (p *propertyOperator) Proppatch(ctx context.Context, uri string, params *model.ProppatchParameters) (*model.ProppatchResponse, error) {
	if params == nil {
		params = &model.ProppatchParameters{}
	}
	body, err := codec.BuildProppatchBody(params.Set, params.Remove, params.Namespaces)
	if err != nil {
		return nil, fmt.Errorf("build proppatch body failed, err:%w", err)
	}
	c := newCall(MethodProppatch, uri, params.RequestParameters).withXMLBody(body, davheader.ContentTypeXML)
	setIf(c, params.LockToken)
	rsp, err := do(ctx, p.d, c)
	if err != nil {
		return nil, err
	}
	raw, err := readAll(c, rsp)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode != StatusMultiStatus {
		return &model.ProppatchResponse{
			StatusCode: rsp.StatusCode,
			Properties: map[model.PropertyName]int{},
		}, nil
	}
	rs, err := codec.ParseProppatch(raw)
	if err != nil {
		return nil, err
	}
	rs.StatusCode = rsp.StatusCode
	return rs, nil
}

func doMultistatus(ctx context.Context, d dispatcher.IDispatcher, c *call) (*model.PropfindResponse, error) {
	rsp, err := do(ctx, d, c)
	if err != nil {
		return nil, err
	}
	raw, err := readAll(c, rsp)
	if err != nil {
		return nil, err
	}
	nodes, err := codec.ParseMultistatus(raw)
	if err != nil {
		return nil, err
	}
	return &model.PropfindResponse{
		StatusCode: rsp.StatusCode,
		Resources:  nodes,
	}, nil
}
