package protocol

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutionError_Kinds(t *testing.T) {
	_, parseErr := strconv.Atoi("abc")

	valueErr := NewValueError("digits required", parseErr)
	assert.Equal(t, "digits required", valueErr.Error())
	assert.True(t, IsValueError(valueErr))
	assert.False(t, IsUnexpectedError(valueErr))
	assert.ErrorIs(t, valueErr, strconv.ErrSyntax)

	unexpected := NewUnexpectedError(errors.New("store offline"))
	assert.Equal(t, "store offline", unexpected.Error())
	assert.True(t, IsUnexpectedError(unexpected))
	assert.False(t, IsValueError(unexpected))
}

func TestExecutionError_MessageFallback(t *testing.T) {
	err := &ExecutionError{Kind: ErrUnexpected}

	assert.Equal(t, "unexpected error", err.Error())
	assert.ErrorIs(t, err, ErrUnexpected)
}
