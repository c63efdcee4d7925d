package errorx

import "fmt"

// InternalErrorf creates a StashkitError with type ErrorTypeInternal and a formatted message
func InternalErrorf(format string, args ...any) *StashkitError {
	return newWithStack(
		ErrorTypeInternal,
		fmt.Sprintf(format, args...),
	)
}

func IsInternalError(e error) bool {
	mE, ok := IsStashkitError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeInternal
}
