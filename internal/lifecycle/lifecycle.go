// Package lifecycle toggles an item's status between active and resolved.
// Updates are optimistic: the local snapshot flips immediately, and a
// backend failure rolls the item back to its prior status before the error
// is surfaced, so local and authoritative state never stay divergent.
package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/foundloss/foundloss/internal/errs"
	"github.com/foundloss/foundloss/internal/model"
)

// Updater is the backend call the controller needs. *api.Client satisfies it.
type Updater interface {
	UpdateStatus(ctx context.Context, token, id string, status model.ItemStatus) error
}

// TokenSource supplies the current bearer credential.
type TokenSource interface {
	Token() string
}

// Controller owns a local snapshot of the caller's items and keeps it in
// step with status mutations.
type Controller struct {
	api    Updater
	tokens TokenSource
	log    *zap.Logger

	mu    sync.Mutex
	items []model.Item
}

// NewController creates a Controller with an empty snapshot. The logger
// may be nil.
func NewController(api Updater, tokens TokenSource, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{api: api, tokens: tokens, log: log}
}

// Reset replaces the local snapshot, typically after a fresh fetch.
func (c *Controller) Reset(items []model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]model.Item(nil), items...)
}

// Items returns a copy of the current snapshot.
func (c *Controller) Items() []model.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Item(nil), c.items...)
}

// SetStatus applies the status locally, then confirms it with the backend.
// Setting the current status again is allowed and still round-trips; the
// server treats it as a no-op. On backend failure the local item reverts
// and the error is returned for display.
func (c *Controller) SetStatus(ctx context.Context, id string, status model.ItemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", errs.ErrValidation, status)
	}

	prior, tracked := c.apply(id, status)
	if err := c.api.UpdateStatus(ctx, c.tokens.Token(), id, status); err != nil {
		if tracked {
			c.apply(id, prior)
			c.log.Warn("status update failed, rolled back",
				zap.String("item", id),
				zap.String("status", string(status)),
				zap.Error(err),
			)
		}
		return err
	}
	return nil
}

// apply flips the snapshot copy of one item and reports its prior status.
// Items outside the snapshot (direct CLI mutations) are a valid case; the
// backend is still the authority.
func (c *Controller) apply(id string, status model.ItemStatus) (prior model.ItemStatus, tracked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			prior = c.items[i].Status
			c.items[i].Status = status
			return prior, true
		}
	}
	return "", false
}
