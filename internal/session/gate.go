package session

import "github.com/foundloss/foundloss/internal/model"

// State is the read-only session view a gate decides on. *Store satisfies
// it; tests substitute fakes.
type State interface {
	CurrentUser() *model.User
	IsLoading() bool
}

// Decision is a gate verdict for one view render.
type Decision int

const (
	// DecisionPending means the session is still resolving; render a
	// placeholder, never a redirect.
	DecisionPending Decision = iota
	// DecisionAllow means the view may render its content.
	DecisionAllow
	// DecisionRedirect means the caller must navigate away.
	DecisionRedirect
)

// Gate decides whether a view renders, waits, or redirects, given session
// state. Both variants share the invariant that no redirect is issued
// while the session is loading.
type Gate interface {
	Decide(s State) Decision
}

// Protected renders content only for authenticated sessions; anonymous
// visitors are redirected (to the login view, by convention).
type Protected struct{}

func (Protected) Decide(s State) Decision {
	if s.IsLoading() {
		return DecisionPending
	}
	if s.CurrentUser() != nil {
		return DecisionAllow
	}
	return DecisionRedirect
}

// Public is the inverse gate: authenticated users are redirected (to the
// dashboard, by convention), anonymous visitors see the content.
type Public struct{}

func (Public) Decide(s State) Decision {
	if s.IsLoading() {
		return DecisionPending
	}
	if s.CurrentUser() != nil {
		return DecisionRedirect
	}
	return DecisionAllow
}
