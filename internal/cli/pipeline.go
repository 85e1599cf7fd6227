package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/internal/observability"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// stdinInput is the INPUT argument that reads the task file from stdin.
const stdinInput = "-"

// stdinName is the file name diagnostics use for stdin.
const stdinName = "<stdin>"

// sourceName is the file name diagnostics use for input.
func sourceName(input string) string {
	if input == stdinInput {
		return stdinName
	}
	return input
}

// renderRequest describes one run of the parse, resolve and export pipeline.
type renderRequest struct {
	Input         string
	Exporter      string
	Options       []string
	Output        string
	EmbedWarnings bool
	DiagnosticLog string
}

// renderResult reports what a pipeline run produced.
type renderResult struct {
	Tasks       models.TaskMap
	Files       []string
	Diagnostics *observability.Collector
}

func checkInitialized() error {
	if Loader == nil || Exporters == nil {
		return fmt.Errorf("burrito not initialized")
	}
	return nil
}

// configDir is the directory searched for .burrito.yaml.
func configDir(input string) string {
	if ConfigHome != "" {
		return ConfigHome
	}
	if input == stdinInput {
		return "."
	}
	return filepath.Dir(input)
}

// loadConfig reads .burrito.yaml and applies command line options on top.
func loadConfig(input string, options []string) (*models.GlobalConfig, error) {
	newMgr := ConfigFor
	if newMgr == nil {
		newMgr = core.NewConfigurationManager
	}
	cm := newMgr(configDir(input))

	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := core.ApplyOptions(cfg, options); err != nil {
		return nil, err
	}
	if err := cm.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// diagnostics is the sink chain of one run: the console, a collector and,
// when a log path is set, a JSON Lines log.
type diagnostics struct {
	sink      observability.Sink
	collector *observability.Collector

	logPath string
	log     observability.EventLog
	logSink *observability.EventLogSink
}

func newDiagnostics(stderr io.Writer, cfg *models.GlobalConfig, logPath string) (*diagnostics, error) {
	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := observability.DefaultConsoleOptions()
	opts.Level = level

	d := &diagnostics{collector: observability.NewCollector(), logPath: logPath}
	sinks := []observability.Sink{observability.NewConsoleSink(stderr, opts), d.collector}

	if logPath != "" {
		d.log, err = observability.NewJSONLEventLog(logPath)
		if err != nil {
			return nil, err
		}
		d.logSink = observability.NewEventLogSink(d.log)
		sinks = append(sinks, d.logSink)
	}
	d.sink = observability.Tee(sinks...)
	return d, nil
}

// history counts the warnings and errors logged for file by this and
// earlier runs.
func (d *diagnostics) history(file string) (warnings, errs int, err error) {
	if d.log == nil {
		return 0, 0, nil
	}
	w, err := d.log.Read(observability.EventFilter{File: file, Level: observability.SeverityWarning})
	if err != nil {
		return 0, 0, err
	}
	e, err := d.log.Read(observability.EventFilter{File: file, Level: observability.SeverityError})
	if err != nil {
		return 0, 0, err
	}
	return len(w), len(e), nil
}

// close closes the log and reports diagnostics that could not be written
// to it.
func (d *diagnostics) close(stderr io.Writer) {
	if d.log == nil {
		return
	}
	if n := d.logSink.Failed(); n > 0 {
		fmt.Fprintf(stderr, "warning: %d diagnostic(s) could not be written to %s\n", n, d.logPath)
	}
	_ = d.log.Close()
}

// loadTasks reads the input file, or stdin for "-", and resolves it.
func loadTasks(cmd *cobra.Command, input string, diag observability.Sink) (*core.LoadResult, error) {
	var (
		result *core.LoadResult
		err    error
	)
	if input == stdinInput {
		dir, werr := os.Getwd()
		if werr != nil {
			dir = "."
		}
		result, err = Loader.LoadReader(stdinName, dir, cmd.InOrStdin(), diag)
	} else {
		result, err = Loader.LoadFile(input, diag)
	}
	if err != nil {
		return nil, markReported(err)
	}
	return result, nil
}

// runPipeline loads the tasks and writes them with the requested exporter,
// either to req.Output or to the command's stdout.
func runPipeline(cmd *cobra.Command, req renderRequest) (*renderResult, error) {
	if err := checkInitialized(); err != nil {
		return nil, err
	}
	exporter, err := Exporters.Lookup(req.Exporter)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, Exporters.Names())
	}
	if req.EmbedWarnings && !Exporters.IsHTML(req.Exporter) {
		return nil, fmt.Errorf("--embed-warnings needs an HTML exporter, %s is not one", req.Exporter)
	}

	cfg, err := loadConfig(req.Input, req.Options)
	if err != nil {
		return nil, err
	}

	diag, err := newDiagnostics(cmd.ErrOrStderr(), cfg, req.DiagnosticLog)
	if err != nil {
		return nil, err
	}
	defer diag.close(cmd.ErrOrStderr())

	result := &renderResult{Diagnostics: diag.collector}
	loaded, err := loadTasks(cmd, req.Input, diag.sink)
	if err != nil {
		return result, err
	}
	result.Tasks = loaded.Tasks
	result.Files = loaded.Files

	exportCfg := core.ExportConfigFor(cfg)
	if req.EmbedWarnings {
		for _, d := range diag.collector.Warnings() {
			exportCfg.Warnings = append(exportCfg.Warnings, d.String())
		}
	}

	// A failed export leaves an existing output file untouched.
	var buf bytes.Buffer
	if err := exporter.Export(&buf, loaded.Tasks, exportCfg); err != nil {
		return result, fmt.Errorf("exporting tasks: %w", err)
	}

	if req.Output == "" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return result, fmt.Errorf("writing output: %w", err)
		}
		return result, nil
	}

	fs := OutputFs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := afero.WriteFile(fs, req.Output, buf.Bytes(), 0o644); err != nil {
		return result, fmt.Errorf("writing %s: %w", req.Output, err)
	}
	return result, nil
}
