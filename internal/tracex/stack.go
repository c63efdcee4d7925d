package internaltracex

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	maxStackDepth = 10
	maxStackBytes = 1024
)

// GetStackTrace returns the stack trace of the caller.
// We can specify skipLevels to skip the number of stack frames.
// i.e. GetStackTrace(2) will skip the first 2 calls (including GetStackTrace itself), so this will return the stack trace of the caller of the function that calls GetStackTrace.
func GetStackTrace(skipLevels int) string {
	pc := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skipLevels, pc)
	frames := runtime.CallersFrames(pc[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more || sb.Len() > maxStackBytes {
			break
		}
	}

	return sb.String()
}
