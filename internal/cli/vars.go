package cli

import (
	"github.com/spf13/afero"

	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/internal/export"
)

// Service instances, set during app initialization in app.go.
var (
	Loader    core.TaskLoader
	Exporters *export.Registry

	// ConfigFor returns the configuration manager for a directory.
	ConfigFor func(basePath string) core.ConfigurationManager

	// ConfigHome overrides the directory searched for .burrito.yaml. When
	// empty the input file's directory is used.
	ConfigHome string

	// OutputFs is where rendered output files are written.
	OutputFs afero.Fs
)
