package errorx

import "fmt"

// AlreadyExistsErrorf creates a StashkitError with type ErrorTypeAlreadyExists and a formatted message
func AlreadyExistsErrorf(format string, args ...any) *StashkitError {
	return newWithStack(
		ErrorTypeAlreadyExists,
		fmt.Sprintf(format, args...),
	)
}

func IsAlreadyExistsError(e error) bool {
	mE, ok := IsStashkitError(e)
	if !ok {
		return false
	}

	return mE.Type == ErrorTypeAlreadyExists
}
