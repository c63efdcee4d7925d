package errorx

import "fmt"

// OutOfRangeErrorf creates a StashkitError with type ErrorTypeOutOfRange and a formatted message
func OutOfRangeErrorf(format string, args ...any) *StashkitError {
	return newWithStack(
		ErrorTypeOutOfRange,
		fmt.Sprintf(format, args...),
	)
}

func IsOutOfRangeError(e error) bool {
	mE, ok := IsStashkitError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeOutOfRange
}
