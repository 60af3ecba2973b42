package contact

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/foundloss/foundloss/internal/errs"
	"github.com/foundloss/foundloss/internal/model"
)

// Requester asks the backend to disclose a poster's contact detail.
type Requester interface {
	ContactOwner(ctx context.Context, token string, req model.ContactRequest) (model.ContactResult, error)
}

// TokenSource yields the bearer token of the signed-in user.
type TokenSource interface {
	Token() string
}

// Opener hands a URI to an external handler. Fire-and-forget: success
// means the handler was invoked, not that a message was sent.
type Opener interface {
	Open(uri string) error
}

// ExecOpener shells out to the platform's URI dispatcher.
type ExecOpener struct{}

func (ExecOpener) Open(uri string) error {
	bin := "xdg-open"
	if runtime.GOOS == "darwin" {
		bin = "open"
	}
	return exec.Command(bin, uri).Start()
}

// State tracks a dialog's progress.
type State int

const (
	StateIdle State = iota
	StateChannelSelected
	StateSubmitting
	StateOpened
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChannelSelected:
		return "channel selected"
	case StateSubmitting:
		return "submitting"
	case StateOpened:
		return "opened"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Dialog is a single contact attempt against a single item. Not safe for
// concurrent use; each attempt gets its own Dialog.
type Dialog struct {
	api    Requester
	tokens TokenSource
	opener Opener
	log    *zap.Logger

	item    model.Item
	state   State
	method  model.ContactMethod
	message string

	uri string
}

// NewDialog starts an idle dialog with the message pre-filled for the
// item's type.
func NewDialog(item model.Item, api Requester, tokens TokenSource, opener Opener, opts ...DialogOption) *Dialog {
	d := &Dialog{
		api:     api,
		tokens:  tokens,
		opener:  opener,
		log:     zap.NewNop(),
		item:    item,
		message: DefaultMessage(item),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type DialogOption func(*Dialog)

func WithLogger(log *zap.Logger) DialogOption {
	return func(d *Dialog) { d.log = log }
}

func (d *Dialog) State() State { return d.state }
func (d *Dialog) Message() string { return d.message }
func (d *Dialog) URI() string { return d.uri }

// SelectChannel picks the communication channel. Selecting again replaces
// the previous choice; a failed dialog may re-select and retry.
func (d *Dialog) SelectChannel(m model.ContactMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: unknown contact method %q", errs.ErrValidation, m)
	}
	d.method = m
	d.state = StateChannelSelected
	return nil
}

// SetMessage replaces the pre-filled message.
func (d *Dialog) SetMessage(msg string) { d.message = msg }

// Submit validates locally, requests disclosure from the backend, builds
// the deep link and invokes the external handler. The backend is never
// contacted when local validation fails.
func (d *Dialog) Submit(ctx context.Context) error {
	if d.state != StateChannelSelected {
		return fmt.Errorf("%w: no contact channel selected", errs.ErrValidation)
	}
	if strings.TrimSpace(d.message) == "" {
		return fmt.Errorf("%w: message is empty", errs.ErrValidation)
	}

	d.state = StateSubmitting
	res, err := d.api.ContactOwner(ctx, d.tokens.Token(), model.ContactRequest{
		ItemID:  d.item.ID,
		Method:  d.method,
		Message: d.message,
	})
	if err != nil {
		d.state = StateFailed
		return err
	}

	uri, err := BuildURI(d.method, res.ContactInfo, d.item, d.message)
	if err != nil {
		d.state = StateFailed
		return err
	}
	d.uri = uri

	if err := d.opener.Open(uri); err != nil {
		d.state = StateFailed
		d.log.Warn("external handler failed", zap.String("method", string(d.method)), zap.Error(err))
		return err
	}
	d.state = StateOpened
	return nil
}
