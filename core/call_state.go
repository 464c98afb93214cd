package core

type CallState int

const (
	CallStateUnknown CallState = iota
	CallStateExecuting
	CallStateSucceeded
	CallStateFailed
)

func CallStateFromString(s string) CallState {
	switch s {
	case CallStateUnknown.String():
		return CallStateUnknown
	case CallStateExecuting.String():
		return CallStateExecuting
	case CallStateSucceeded.String():
		return CallStateSucceeded
	case CallStateFailed.String():
		return CallStateFailed
	default:
		return CallStateUnknown
	}
}

func (s CallState) String() string {
	switch s {
	case CallStateUnknown:
		return "unknown"
	case CallStateExecuting:
		return "executing"
	case CallStateSucceeded:
		return "succeeded"
	case CallStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
