package main

import (
	"fmt"
	"os"

	app "github.com/valter-silva-au/burrito/internal"
	"github.com/valter-silva-au/burrito/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	if _, err := app.NewApp(app.ResolveConfigHome()); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing burrito: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
