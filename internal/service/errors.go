package service

import (
	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
)

// msgLoginRequired replaces any unauthenticated remote failure.
const msgLoginRequired = "Bạn cần đăng nhập."

// RemoteFailure is a function/identity failure translated for display.
// Kind decides the HTTP status in handlers; Message is what the user sees.
type RemoteFailure struct {
	Kind    pkgerrors.Kind
	Message string
	Err     error
}

func (e *RemoteFailure) Error() string { return e.Message }
func (e *RemoteFailure) Unwrap() error { return e.Err }

// remoteMessages localized texts for one call site. An empty emailExists
// keeps the raw message for that kind.
type remoteMessages struct {
	forbidden   string
	emailExists string
}

// localizeRemote classifies err at the boundary and picks the message:
// unauthenticated asks to sign in again, forbidden gets the call site's
// permission text, anything else keeps the remote text.
func localizeRemote(err error, msgs remoteMessages) *RemoteFailure {
	kind := pkgerrors.KindOf(err)
	msg := err.Error()
	switch kind {
	case pkgerrors.KindUnauthenticated:
		msg = msgLoginRequired
	case pkgerrors.KindForbidden:
		msg = msgs.forbidden
	case pkgerrors.KindEmailExists:
		if msgs.emailExists != "" {
			msg = msgs.emailExists
		} else {
			kind = pkgerrors.KindUnknown
		}
	}
	return &RemoteFailure{Kind: kind, Message: msg, Err: err}
}
