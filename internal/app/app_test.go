package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppNew(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "bee", a.App.Name)
}

func TestIsUserInputError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"required flag error", fmt.Errorf("Required flag not provided"), true},
		{"flag not defined error", fmt.Errorf("flag provided but not defined"), true},
		{"invalid value error", fmt.Errorf("invalid value for flag"), true},
		{"command not found error", fmt.Errorf("command not found"), true},
		{"incorrect usage error", fmt.Errorf("incorrect usage"), true},
		{"flag needs argument error", fmt.Errorf("flag needs an argument"), true},
		{"help topic error", fmt.Errorf("No help topic for 'unknown'"), true},
		{"internal error", fmt.Errorf("internal application error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUserInputError(tt.err))
		})
	}
}

func TestRunAddThenList(t *testing.T) {
	dir := t.TempDir()
	a, err := New()
	require.NoError(t, err)

	require.NoError(t, a.Run([]string{"bee", "--data-home", dir, "add", "buy", "milk", "+shopping"}))
	require.NoError(t, a.Run([]string{"bee", "--data-home", dir, "list"}))
}

func TestRunUnknownFlagIsUserInputError(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	err = a.Run([]string{"bee", "--no-such-flag"})
	assert.Error(t, err)
	assert.True(t, isUserInputError(err))
}
