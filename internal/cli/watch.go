package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	watchOutput        string
	watchEmbedWarnings bool
)

// watchDebounce collapses bursts of file events into one render.
var watchDebounce = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch INPUT EXPORTER -o FILE [KEY=VALUE...]",
	Short: "Re-render a task file whenever it changes",
	Long: `Render INPUT like the render command, then keep watching the directories of
INPUT and every file it includes, and re-render into FILE after every change.
Errors are reported and the previous output is kept until the next
successful render.

Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInitialized(); err != nil {
			return err
		}
		if watchOutput == "" {
			return fmt.Errorf("watch requires --output")
		}
		input := args[0]
		if input == stdinInput {
			return fmt.Errorf("watch cannot read from stdin")
		}

		req := renderRequest{
			Input:         input,
			Exporter:      args[1],
			Options:       args[2:],
			Output:        watchOutput,
			EmbedWarnings: watchEmbedWarnings,
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer watcher.Close()

		dir := filepath.Dir(input)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		watched := map[string]bool{filepath.Clean(dir): true}

		render := func() {
			result, err := runPipeline(cmd, req)
			if err != nil {
				if !IsReported(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
				return
			}
			watchDirs(watcher, watched, result.Files, cmd.ErrOrStderr())
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s\n", watchOutput)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		render()
		return watchLoop(ctx, watcher.Events, watcher.Errors, watchOutput, render, cmd.ErrOrStderr())
	},
}

// dirWatcher is the part of fsnotify.Watcher that watchDirs uses.
type dirWatcher interface {
	Add(name string) error
}

// watchDirs adds the directory of each file to w unless it is already in
// watched.
func watchDirs(w dirWatcher, watched map[string]bool, files []string, errOut io.Writer) {
	for _, f := range files {
		dir := filepath.Clean(filepath.Dir(f))
		if watched[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			fmt.Fprintf(errOut, "watch error: watching %s: %v\n", dir, err)
			continue
		}
		watched[dir] = true
	}
}

// watchLoop calls render once per burst of relevant events until ctx is done.
// Events for the output file itself are ignored.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, output string, render func(), errOut io.Writer) error {
	outputPath, _ := filepath.Abs(output)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if p, _ := filepath.Abs(event.Name); p == outputPath {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch error: %v\n", err)

		case <-fire:
			fire = nil
			render()
		}
	}
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "file to write the rendered output to")
	watchCmd.Flags().BoolVar(&watchEmbedWarnings, "embed-warnings", false, "append parse warnings to HTML reports")
	rootCmd.AddCommand(watchCmd)
}
