package taskserver

import "taskwatch/internal/domain/entity"

// State follows the celery result states.
type State string

const (
	StatePending  State = "PENDING"
	StateReceived State = "RECEIVED"
	StateStarted  State = "STARTED"
	StateRetry    State = "RETRY"
	StateSuccess  State = "SUCCESS"
	StateFailure  State = "FAILURE"
	StateRevoked  State = "REVOKED"
)

func ParseState(s string) (State, bool) {
	st := State(s)
	switch st {
	case StatePending, StateReceived, StateStarted, StateRetry, StateSuccess, StateFailure, StateRevoked:
		return st, true
	}
	return "", false
}

func (s State) Ready() bool {
	return s == StateSuccess || s == StateFailure || s == StateRevoked
}

// Propagates reports states whose failure is shown to the user.
func (s State) Propagates() bool {
	return s == StateFailure || s == StateRevoked
}

func (s State) StatusTag() string {
	switch {
	case s == StatePending:
		return entity.MarkerWaiting
	case !s.Ready():
		return entity.MarkerRunning
	default:
		return entity.MarkerReady
	}
}

// Level is the severity class of the row container.
func (s State) Level() string {
	if s.Propagates() {
		return "error"
	}
	return "info"
}

// next is the demo progression used by Registry.Advance.
func (s State) next() State {
	switch s {
	case StatePending:
		return StateReceived
	case StateReceived, StateRetry:
		return StateStarted
	default:
		return s
	}
}
