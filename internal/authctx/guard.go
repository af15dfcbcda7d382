package authctx

import "github.com/truongminh05/VCI-Web/internal/model"

// Decision is the outcome of gating the admin area.
type Decision int

const (
	// DecisionWait means auth is still loading; no navigation happens.
	DecisionWait Decision = iota
	DecisionRedirect
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRedirect:
		return "redirect"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// Evaluate gates on "signed in and admin". Loading is checked first so a
// pending profile never reads as "no user".
func Evaluate(s State) Decision {
	if s.Loading {
		return DecisionWait
	}
	if s.User == nil || s.Role != model.RoleAdmin {
		return DecisionRedirect
	}
	return DecisionAllow
}
