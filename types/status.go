package types

import "fmt"

// ExecutionStatus is the outcome of running a transaction or one of
// its sub-calls. Executed is the only successful status; every other
// value, including ones this package does not know, is a failure.
type ExecutionStatus int32

const (
	StatusUndefined ExecutionStatus = 0
	StatusExecuted  ExecutionStatus = 1

	// Infrastructure failures.
	StatusCanceled    ExecutionStatus = -1
	StatusSystemError ExecutionStatus = -2

	// Contract failures.
	StatusContractError        ExecutionStatus = -10
	StatusExceededMaxCallDepth ExecutionStatus = -11

	// A pre-transaction failed.
	StatusPrefailed ExecutionStatus = -99
	// A post-transaction failed.
	StatusPostfailed ExecutionStatus = -199
)

// Executed reports whether the status denotes full success.
func (s ExecutionStatus) Executed() bool { return s == StatusExecuted }

func (s ExecutionStatus) String() string {
	switch s {
	case StatusUndefined:
		return "Undefined"
	case StatusExecuted:
		return "Executed"
	case StatusCanceled:
		return "Canceled"
	case StatusSystemError:
		return "SystemError"
	case StatusContractError:
		return "ContractError"
	case StatusExceededMaxCallDepth:
		return "ExceededMaxCallDepth"
	case StatusPrefailed:
		return "Prefailed"
	case StatusPostfailed:
		return "Postfailed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}
