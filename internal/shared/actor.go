package shared

import (
	"os"

	"github.com/urfave/cli/v2"
)

// GetActorFromContext resolves the actor attribution string from the
// --actor flag, falling back as ResolveActor does.
func GetActorFromContext(c *cli.Context) string {
	return ResolveActor(c.String("actor"))
}

// ResolveActor applies the same fallback logic outside of a CLI context:
// the given actor if non-empty, else $USER, else "unknown".
func ResolveActor(actor string) string {
	if actor != "" {
		return actor
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}
