package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhancedErrorMessage(t *testing.T) {
	err := NewParseError("filter expression", stderrors.New("unbalanced parentheses"))
	msg := err.Error()
	assert.Contains(t, msg, "unbalanced parentheses")
	assert.Contains(t, msg, "Suggestion:")
}

func TestEnhancedErrorUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := NewIOError("writing task store", cause)
	assert.ErrorIs(t, err, cause)
}

func TestNewConfigErrorIncludesCause(t *testing.T) {
	err := NewConfigError(stderrors.New("unknown coefficient field 'bogus'"))
	assert.Contains(t, err.Error(), "bogus")
}
