package models

// ExportConfig selects the sections of an HTML report and carries the
// fragments injected into its head and body.
type ExportConfig struct {
	IncludeTOC      bool `yaml:"include_toc"`
	IncludeCalendar bool `yaml:"include_calendar"`
	IncludeSummary  bool `yaml:"include_summary"`
	FoldTOC         bool `yaml:"fold_toc"`

	// HeadPrefix is inserted at the start of the <head> element.
	HeadPrefix string `yaml:"head_prefix,omitempty"`
	// BodySuffix is inserted at the end of the <body> element.
	BodySuffix string `yaml:"body_suffix,omitempty"`

	// Warnings are shown in a section at the end of the report when non-empty.
	Warnings []string `yaml:"-"`
}

// DefaultExportConfig returns the section defaults used when nothing else is
// configured: summary and folding on, table of contents and calendar off.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		IncludeSummary: true,
		FoldTOC:        true,
	}
}

// GlobalConfig holds the settings read from .burrito.yaml via Viper. Each
// embedded group decodes from the YAML section of the same name.
type GlobalConfig struct {
	ExportSettings `yaml:"export" mapstructure:"export"`
	HTMLSettings   `yaml:"html" mapstructure:"html"`
	LogSettings    `yaml:"log" mapstructure:"log"`
}

// ExportSettings is the export section of .burrito.yaml.
type ExportSettings struct {
	Summary bool `yaml:"summary" mapstructure:"summary"`
	Fold    bool `yaml:"fold" mapstructure:"fold"`
}

// HTMLSettings is the html section of .burrito.yaml.
type HTMLSettings struct {
	Head           string `yaml:"head,omitempty" mapstructure:"head"`
	Tail           string `yaml:"tail,omitempty" mapstructure:"tail"`
	RefreshSeconds int    `yaml:"refresh_seconds" mapstructure:"refresh_seconds"`
}

// LogSettings is the log section of .burrito.yaml.
type LogSettings struct {
	LogLevel string `yaml:"level" mapstructure:"level"`
}
