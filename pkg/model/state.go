package model

// Phase enumerates the request lifecycle of a flow controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// RequestState is Idle, Loading, Success(response) or Error(message). Fields
// are unexported so only the constructors below can produce a value, and a
// controller's current state only changes through its own transitions.
type RequestState struct {
	phase    Phase
	response PredictionResponse
	message  string
}

// Idle is the state before the first submission.
func Idle() RequestState {
	return RequestState{phase: PhaseIdle}
}

// Loading marks a submission in flight.
func Loading() RequestState {
	return RequestState{phase: PhaseLoading}
}

// Succeeded carries the response of a completed submission.
func Succeeded(response PredictionResponse) RequestState {
	return RequestState{phase: PhaseSuccess, response: response}
}

// Failed carries the user-facing message of a failed operation.
func Failed(message string) RequestState {
	return RequestState{phase: PhaseError, message: message}
}

func (s RequestState) Phase() Phase                 { return s.phase }
func (s RequestState) Response() PredictionResponse { return s.response }
func (s RequestState) Message() string              { return s.message }

// Terminal reports whether the state ends a submission cycle.
func (s RequestState) Terminal() bool {
	return s.phase == PhaseSuccess || s.phase == PhaseError
}
