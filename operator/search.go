package operator

import (
	"context"

	"github.com/xxxsen/davkit/codec"
	"github.com/xxxsen/davkit/davheader"
	"github.com/xxxsen/davkit/dispatcher"
	"github.com/xxxsen/davkit/model"
)

type searchOperator struct {
	d dispatcher.IDispatcher
}

func NewSearchOperator(d dispatcher.IDispatcher) ISearchOperator {
	return &searchOperator{d: d}
}

func (s *searchOperator) Search(ctx context.Context, uri string, params *model.SearchParameters) (*model.PropfindResponse, error) {
	if params == nil {
		params = &model.SearchParameters{}
	}
	scope := params.Scope
	if len(scope) == 0 {
		u, err := s.d.Resolve(uri)
		if err != nil {
			return nil, err
		}
		scope = u.String()
	}
	body := codec.BuildSearchBody(scope, params.Keyword, params.Body)
	c := newCall(MethodSearch, uri, params.RequestParameters).withXMLBody(body, davheader.ContentTypeTextXML)
	return doMultistatus(ctx, s.d, c)
}
