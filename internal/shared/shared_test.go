package shared

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveActorPrefersExplicitValue(t *testing.T) {
	assert.Equal(t, "bob", ResolveActor("bob"))
}

func TestResolveActorFallsBackToUser(t *testing.T) {
	old := os.Getenv("USER")
	defer os.Setenv("USER", old)

	os.Setenv("USER", "alice")
	assert.Equal(t, "alice", ResolveActor(""))
}

func TestResolveActorFallsBackToUnknown(t *testing.T) {
	old := os.Getenv("USER")
	defer os.Setenv("USER", old)

	os.Unsetenv("USER")
	assert.Equal(t, "unknown", ResolveActor(""))
}
