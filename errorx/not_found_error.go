package errorx

import "fmt"

// NotFoundErrorf creates a StashkitError with type ErrorTypeNotFound and a formatted message
func NotFoundErrorf(format string, args ...any) *StashkitError {
	return newWithStack(
		ErrorTypeNotFound,
		fmt.Sprintf(format, args...),
	)
}

func IsNotFoundError(e error) bool {
	mE, ok := IsStashkitError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeNotFound
}
