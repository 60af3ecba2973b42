package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/foundloss/foundloss/internal/api"
	"github.com/foundloss/foundloss/internal/model"
)

// TokenSource supplies the current bearer credential. *session.Store
// satisfies it.
type TokenSource interface {
	Token() string
}

// Directory is the fetch side of the item views. It trusts the backend's
// responses: a type constraint is passed as a request parameter and never
// re-applied client-side, though a contradicting response is logged.
type Directory struct {
	api    *api.Client
	tokens TokenSource
	log    *zap.Logger
}

// New creates a Directory. The logger may be nil.
func New(client *api.Client, tokens TokenSource, log *zap.Logger) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{api: client, tokens: tokens, log: log}
}

// List fetches items matching opts. Items whose type contradicts the
// requested type are passed through unchanged; the mismatch is recorded so
// a misbehaving backend is visible in logs.
func (d *Directory) List(ctx context.Context, opts api.ListOptions) ([]model.Item, error) {
	items, err := d.api.ListItems(ctx, d.tokens.Token(), opts)
	if err != nil {
		return nil, err
	}
	if opts.Type != "" {
		for _, item := range items {
			if item.Type != opts.Type {
				d.log.Warn("backend returned item outside requested type",
					zap.String("item", item.ID),
					zap.String("requested", string(opts.Type)),
					zap.String("got", string(item.Type)),
				)
			}
		}
	}
	return items, nil
}

// Mine fetches the current user's items, any status.
func (d *Directory) Mine(ctx context.Context) ([]model.Item, error) {
	return d.api.MyItems(ctx, d.tokens.Token())
}

// Get fetches a single item; errs.ErrNotFound when the backend has no such
// item, in which case the caller must navigate away and surface a notice.
func (d *Directory) Get(ctx context.Context, id string) (model.Item, error) {
	return d.api.GetItem(ctx, d.tokens.Token(), id)
}
