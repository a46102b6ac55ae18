// internal/game/errors.go
package game

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-checkable classification of a rejected operation.
// Every kind is a caller error: the requested operation is illegal given the
// current session state. They are surfaced verbatim, never retried.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "notFound"
	KindGameFull          ErrorKind = "gameFull"
	KindAlreadyStarted    ErrorKind = "alreadyStarted"
	KindTooFewPlayers     ErrorKind = "tooFewPlayers"
	KindNotAParticipant   ErrorKind = "notAParticipant"
	KindWrongPhase        ErrorKind = "wrongPhase"
	KindNotYourTurn       ErrorKind = "notYourTurn"
	KindCardUnavailable   ErrorKind = "cardUnavailable"
	KindTicketUnavailable ErrorKind = "ticketUnavailable"
	KindRouteNotFound     ErrorKind = "routeNotFound"
	KindInvalidClaim      ErrorKind = "invalidClaim"
)

// Error is a structured rule-violation failure with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, or "" if err is not a game error.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}
