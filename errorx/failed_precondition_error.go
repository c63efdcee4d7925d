package errorx

import "fmt"

// FailedPreconditionErrorf creates a StashkitError with type ErrorTypeFailedPrecondition and a formatted message
func FailedPreconditionErrorf(format string, args ...any) *StashkitError {
	return newWithStack(
		ErrorTypeFailedPrecondition,
		fmt.Sprintf(format, args...),
	)
}

func IsFailedPreconditionError(e error) bool {
	mE, ok := IsStashkitError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeFailedPrecondition
}
