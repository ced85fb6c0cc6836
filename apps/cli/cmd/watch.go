package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var watchCmd = &cobra.Command{
	Use:   "watch [--key=value ...] [-- engine-args ...]",
	Short: "Run the BDD suite and re-run it on changes",
	Long: `Run the BDD suite, then run it again whenever a feature file or a
Python step module under the watched paths changes. Press Ctrl+C to stop;
the exit status is the one of the last run.

Watched paths come from the watch.paths setting (default: tests).

Examples:
  bddrun watch --headless=true --markers=smoke`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE:               watchCommand,
}

func watchCommand(cmd *cobra.Command, args []string) error {
	a, release, err := newAppForCommand(cmd)
	if err != nil {
		return err
	}
	defer release()

	res, err := a.resolve(args)
	if err != nil {
		return err
	}
	if res.Help {
		return a.usage()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range a.settings.Watch.Paths {
		if err := addRecursive(watcher, root); err != nil {
			a.console.Warnf("cannot watch %s: %v", root, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, last := a.execute(ctx, res)
	if fatal(last) {
		return last
	}
	if last != nil && !silent(last) {
		a.console.Error(last)
	}

	a.console.Info("\nWatching for changes... (press Ctrl+C to stop)")
	watchLoop(ctx, watcher, WatchDebounceDelay, func(path string) {
		a.console.Info("\nFile changed: %s\nRe-running scenarios...\n", path)
		_, last = a.execute(ctx, res)
		if last != nil && !silent(last) {
			a.console.Error(last)
		}
		a.console.Info("\nWatching for changes... (press Ctrl+C to stop)")
	}, func(err error) {
		a.console.Warnf("watcher error: %v", err)
	})

	return last
}

// addRecursive watches root and every directory below it
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// isWatchedFile reports whether a change to path warrants a re-run
func isWatchedFile(path string) bool {
	switch filepath.Ext(path) {
	case ".feature", ".py":
		return true
	}
	return false
}

// watchLoop calls onChange once per burst of relevant events, after the
// burst has been quiet for delay. It returns when ctx is done or the
// watcher closes. onChange runs on the loop goroutine, so runs never
// overlap.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, delay time.Duration, onChange func(path string), onError func(error)) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(w, event.Name)
					continue
				}
			}
			if event.Op == fsnotify.Chmod || !isWatchedFile(event.Name) {
				continue
			}

			changed = event.Name
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(changed)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			onError(err)
		}
	}
}
