package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/foundloss/foundloss/internal/model"
)

type fakeUpdater struct {
	calls []model.ItemStatus
	err   error
}

var _ Updater = (*fakeUpdater)(nil)

func (f *fakeUpdater) UpdateStatus(_ context.Context, _, _ string, status model.ItemStatus) error {
	f.calls = append(f.calls, status)
	return f.err
}

type staticToken string

var _ TokenSource = staticToken("")

func (s staticToken) Token() string { return string(s) }

func snapshot() []model.Item {
	return []model.Item{
		{ID: "1", Type: model.TypeLost, Status: model.StatusActive},
		{ID: "2", Type: model.TypeFound, Status: model.StatusResolved},
	}
}

func TestSetStatusOptimistic(t *testing.T) {
	t.Parallel()

	upd := &fakeUpdater{}
	c := NewController(upd, staticToken("tok"), nil)
	c.Reset(snapshot())

	if err := c.SetStatus(context.Background(), "1", model.StatusResolved); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got := c.Items()[0].Status; got != model.StatusResolved {
		t.Fatalf("local status = %v, want resolved", got)
	}
	if len(upd.calls) != 1 {
		t.Fatalf("backend calls = %d, want 1", len(upd.calls))
	}
}

func TestSetStatusIdempotent(t *testing.T) {
	t.Parallel()

	upd := &fakeUpdater{}
	c := NewController(upd, staticToken("tok"), nil)
	c.Reset(snapshot())

	for i := 0; i < 2; i++ {
		if err := c.SetStatus(context.Background(), "1", model.StatusResolved); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if got := c.Items()[0].Status; got != model.StatusResolved {
		t.Fatalf("double apply changed observable status: %v", got)
	}
}

func TestSetStatusRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	upd := &fakeUpdater{err: errors.New("boom")}
	c := NewController(upd, staticToken("tok"), nil)
	c.Reset(snapshot())

	err := c.SetStatus(context.Background(), "1", model.StatusResolved)
	if err == nil {
		t.Fatal("expected the backend error to surface")
	}
	if got := c.Items()[0].Status; got != model.StatusActive {
		t.Fatalf("failed update must roll back, status = %v", got)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	upd := &fakeUpdater{}
	c := NewController(upd, staticToken("tok"), nil)
	c.Reset(snapshot())

	if err := c.SetStatus(context.Background(), "1", model.ItemStatus("gone")); err == nil {
		t.Fatal("unknown status must be rejected")
	}
	if len(upd.calls) != 0 {
		t.Fatal("invalid status must never reach the backend")
	}
	if got := c.Items()[0].Status; got != model.StatusActive {
		t.Fatalf("snapshot must be untouched, status = %v", got)
	}
}

func TestSetStatusOutsideSnapshot(t *testing.T) {
	t.Parallel()

	upd := &fakeUpdater{}
	c := NewController(upd, staticToken("tok"), nil)

	if err := c.SetStatus(context.Background(), "elsewhere", model.StatusActive); err != nil {
		t.Fatalf("untracked item should still round-trip: %v", err)
	}
	if len(upd.calls) != 1 {
		t.Fatalf("backend calls = %d, want 1", len(upd.calls))
	}
}
