package operator

import (
	"context"
	"io"

	"github.com/xxxsen/davkit/model"
)

type IPropertyOperator interface {
	Propfind(ctx context.Context, uri string, params *model.PropfindParameters) (*model.PropfindResponse, error)
	Proppatch(ctx context.Context, uri string, params *model.ProppatchParameters) (*model.ProppatchResponse, error)
}

type IResourceOperator interface {
	Mkcol(ctx context.Context, uri string, params *model.MkcolParameters) (*model.Response, error)
	Delete(ctx context.Context, uri string, params *model.DeleteParameters) (*model.Response, error)
	Copy(ctx context.Context, src string, dst string, params *model.CopyParameters) (*model.Response, error)
	Move(ctx context.Context, src string, dst string, params *model.MoveParameters) (*model.Response, error)
	Options(ctx context.Context, uri string, params *model.OptionsParameters) (*model.OptionsResponse, error)
}

type IFileOperator interface {
	// GetRawFile asks for the stored bytes, without server side processing.
	GetRawFile(ctx context.Context, uri string, params *model.GetFileParameters) (*model.FileResponse, error)
	// GetProcessedFile lets the server render the resource (scripts etc).
	GetProcessedFile(ctx context.Context, uri string, params *model.GetFileParameters) (*model.FileResponse, error)
	PutFile(ctx context.Context, uri string, r io.Reader, params *model.PutFileParameters) (*model.Response, error)
}

type ILockOperator interface {
	Lock(ctx context.Context, uri string, params *model.LockParameters) (*model.LockResponse, error)
	RefreshLock(ctx context.Context, uri string, token string, params *model.RefreshLockParameters) (*model.LockResponse, error)
	Unlock(ctx context.Context, uri string, token string, params *model.UnlockParameters) (*model.Response, error)
}

type ISearchOperator interface {
	Search(ctx context.Context, uri string, params *model.SearchParameters) (*model.PropfindResponse, error)
}
