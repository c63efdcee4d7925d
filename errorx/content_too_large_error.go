package errorx

import "fmt"

// ContentTooLargeErrorf creates a StashkitError with type ErrorTypeContentTooLarge and a formatted message
func ContentTooLargeErrorf(format string, args ...any) *StashkitError {
	return newWithStack(
		ErrorTypeContentTooLarge,
		fmt.Sprintf(format, args...),
	)
}

func IsContentTooLargeError(e error) bool {
	mE, ok := IsStashkitError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeContentTooLarge
}
