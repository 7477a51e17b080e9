package model

// OperationStatus is the lifecycle of a client-side mutating request.
type OperationStatus string

const (
	OperationIdle    OperationStatus = "idle"
	OperationLoading OperationStatus = "loading"
	OperationSuccess OperationStatus = "success"
	OperationError   OperationStatus = "error"
)

// OperationState is transient, client-only status of a mutating request.
type OperationState struct {
	Status  OperationStatus
	Message string
}

// IdleOperation is the state of a key that has never been submitted.
var IdleOperation = OperationState{Status: OperationIdle}

func LoadingOperation() OperationState {
	return OperationState{Status: OperationLoading}
}

func SucceededOperation(message string) OperationState {
	return OperationState{Status: OperationSuccess, Message: message}
}

func FailedOperation(message string) OperationState {
	return OperationState{Status: OperationError, Message: message}
}

// Loading reports whether a request for this key is in flight.
func (s OperationState) Loading() bool {
	return s.Status == OperationLoading
}
