// Package internal provides the App struct that wires all components of
// burrito together and initializes the CLI layer.
package internal

import (
	"os"

	"github.com/spf13/afero"

	"github.com/valter-silva-au/burrito/internal/cli"
	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/internal/export"
)

// App holds all service dependencies for burrito.
type App struct {
	// ConfigHome overrides where .burrito.yaml is looked up. Empty means the
	// directory of each input file.
	ConfigHome string

	// Filesystem used for task files, includes and output files.
	Fs afero.Fs

	// Core services
	Loader    core.TaskLoader
	Markdown  export.MarkdownRenderer
	Exporters *export.Registry
}

// NewApp creates and wires all components of burrito and hands them to the
// CLI layer.
func NewApp(configHome string) (*App, error) {
	app := &App{
		ConfigHome: configHome,
		Fs:         afero.NewOsFs(),
	}

	// --- Core services ---
	app.Loader = core.NewTaskLoader(app.Fs)
	app.Markdown = export.NewMarkdownRenderer()
	app.Exporters = export.NewRegistry(app.Markdown)

	// --- Wire CLI ---
	cli.Loader = app.Loader
	cli.Exporters = app.Exporters
	cli.ConfigFor = core.NewConfigurationManager
	cli.ConfigHome = app.ConfigHome
	cli.OutputFs = app.Fs

	return app, nil
}

// ResolveConfigHome returns the directory named by BURRITO_HOME, or "" when
// configuration should be read next to each input file.
func ResolveConfigHome() string {
	return os.Getenv("BURRITO_HOME")
}
