package feed

import "log"

// State is the connection lifecycle of one subscription.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateReconnecting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// transitions is the explicit table of legal moves. Reconnecting may loop on
// itself while the dial keeps failing; Closed is terminal.
var transitions = map[State]map[State]bool{
	StateConnecting:   {StateOpen: true, StateReconnecting: true, StateClosed: true},
	StateOpen:         {StateReconnecting: true, StateClosed: true},
	StateReconnecting: {StateOpen: true, StateReconnecting: true, StateClosed: true},
	StateClosed:       {},
}

func legalTransition(from, to State) bool {
	if from == to && from != StateReconnecting {
		return false
	}
	return transitions[from][to]
}

func logIllegalTransition(from, to State) {
	log.Printf("[feed] WARN: illegal state transition %s -> %s ignored", from, to)
}
