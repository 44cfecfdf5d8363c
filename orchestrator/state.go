package orchestrator

// State is a step of the function-calling round trip
type State int

const (
	// AwaitingLLM means a completion request is in flight
	AwaitingLLM State = iota
	// AwaitingToolResults means the model requested calls that are being resolved
	AwaitingToolResults
	// Done means the model produced a final answer
	Done
)

func (s State) String() string {
	switch s {
	case AwaitingLLM:
		return "awaiting_llm"
	case AwaitingToolResults:
		return "awaiting_tool_results"
	case Done:
		return "done"
	}
	return "unknown"
}

// validTransition lists the edges of the round trip state machine
func validTransition(from, to State) bool {
	switch from {
	case AwaitingLLM:
		return to == Done || to == AwaitingToolResults
	case AwaitingToolResults:
		return to == AwaitingLLM
	}
	return false
}
