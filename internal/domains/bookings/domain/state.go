package domain

import (
	"fmt"
	"strings"
)

// State enumerates the listing filters callers may request. There is no
// APPROVED member; the enum gap is part of the public contract.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState resolves a case-insensitive state string, defaulting blank input
// to ALL.
func ParseState(raw string) (State, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	state := State(strings.ToUpper(strings.TrimSpace(raw)))
	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	default:
		return "", fmt.Errorf("unknown state: %s", raw)
	}
}
