package main

import (
	"log"
	"os"

	"github.com/Nelyah/bee/internal/app"
)

// Version, commit, and build date are set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app.SetVersionFromBuild(version, commit, date)

	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
