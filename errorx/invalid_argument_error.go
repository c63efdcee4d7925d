package errorx

import "fmt"

// InvalidArgumentErrorf creates a StashkitError with type ErrorTypeInvalidArgument and a formatted message
func InvalidArgumentErrorf(format string, args ...any) *StashkitError {
	return newWithStack(
		ErrorTypeInvalidArgument,
		fmt.Sprintf(format, args...),
	)
}

func IsInvalidArgumentError(e error) bool {
	mE, ok := IsStashkitError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeInvalidArgument
}
