package errorx

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashkit/x/assertx"
)

func TestError(t *testing.T) {
	t.Run("should return stashkit error from stack", func(t *testing.T) {
		err := AlreadyExistsErrorf("test")
		serr := errors.WithStack(err)

		_, ok := IsStashkitError(serr)
		assert.True(t, ok)
	})

	t.Run("should return a stashkit error without stack", func(t *testing.T) {
		err := StashkitError{Type: ErrorTypeAlreadyExists, Message: "test"}

		_, ok := IsStashkitError(err)
		assert.True(t, ok)
	})

	t.Run("should return is not found from stack", func(t *testing.T) {
		err := errors.WithStack(NotFoundErrorf("test"))
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("should return is not found", func(t *testing.T) {
		err := NotFoundErrorf("test")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("should not match a plain error", func(t *testing.T) {
		_, ok := IsStashkitError(errors.New("test"))
		assert.False(t, ok)
		assert.False(t, IsNotFoundError(errors.New("test")))
	})

	t.Run("should append details to existing error", func(t *testing.T) {
		cerr := FailedPreconditionErrorf("test")
		cerr = cerr.WithDetails(NotFoundErrorf("testnotfound"))
		assertx.Equal(t, &StashkitError{
			Type:    ErrorTypeFailedPrecondition,
			Message: "test",
			Details: []StashkitError{
				{
					Type:    ErrorTypeNotFound,
					Message: "testnotfound",
				},
			},
		}, cerr, cmpopts.IgnoreUnexported(StashkitError{}))

		// Append more details
		cerr = cerr.WithDetails(InvalidArgumentErrorf("testinvalid"))
		assertx.Equal(t, &StashkitError{
			Type:    ErrorTypeFailedPrecondition,
			Message: "test",
			Details: []StashkitError{
				{
					Type:    ErrorTypeNotFound,
					Message: "testnotfound",
				},
				{
					Type:    ErrorTypeInvalidArgument,
					Message: "testinvalid",
				},
			},
		}, cerr, cmpopts.IgnoreUnexported(StashkitError{}))
	})

	t.Run("should capture the creation stack", func(t *testing.T) {
		err := InternalErrorf("boom")
		require.NotEmpty(t, err.StackTrace())
		assert.Contains(t, fmt.Sprintf("%+v", err), "errorx/error_test.go")
	})

	t.Run("should format as type and message", func(t *testing.T) {
		err := ContentTooLargeErrorf("too many items: %d", 1001)
		assert.Equal(t, "[CONTENT_TOO_LARGE] too many items: 1001", err.Error())
		assert.True(t, IsContentTooLargeError(err))
	})
}

func TestNewStashkitErrorFromMessage(t *testing.T) {
	t.Run("should parse a wire message back into a typed error", func(t *testing.T) {
		orig := NotFoundErrorf("asset %q could not be found", "a-1")
		parsed, err := NewStashkitErrorFromMessage(orig.Error())
		require.NoError(t, err)
		assert.Equal(t, ErrorTypeNotFound, parsed.Type)
		assert.Equal(t, `asset "a-1" could not be found`, parsed.Message)
	})

	t.Run("should reject an unknown type", func(t *testing.T) {
		_, err := NewStashkitErrorFromMessage("[BOGUS] nope")
		require.Error(t, err)
	})

	t.Run("should reject a message without a type", func(t *testing.T) {
		_, err := NewStashkitErrorFromMessage("plain message")
		require.Error(t, err)
	})
}

func TestParseErrorType(t *testing.T) {
	t.Run("should parse all valid types", func(t *testing.T) {
		for _, s := range []string{
			"ALREADY_EXISTS",
			"CONTENT_TOO_LARGE",
			"FAILED_PRECONDITION",
			"INTERNAL",
			"INVALID_ARGUMENT",
			"NOT_FOUND",
			"OUT_OF_RANGE",
		} {
			eT, err := ParseErrorType(s)
			require.NoError(t, err)
			assert.Equal(t, s, eT.String())
		}
	})

	t.Run("should fail on an unknown type", func(t *testing.T) {
		_, err := ParseErrorType("SOMETHING_ELSE")
		require.Error(t, err)
		assert.True(t, IsInvalidArgumentError(err))
	})
}

func TestNewEnumOutOfRangeError(t *testing.T) {
	err := NewEnumOutOfRangeError("archive", []string{"status", "location"}, "action type")
	assert.True(t, IsOutOfRangeError(err))
	assert.Equal(t, `[OUT_OF_RANGE] "archive" is not a valid action type. Possible values: [status, location]`, err.Error())
}
