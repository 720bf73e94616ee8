package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/c360studio/pslspec/config"
	"github.com/c360studio/pslspec/validator"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func watchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and re-lint changed PSL documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", args[0])
			}

			w, err := newDirWatcher(args[0], cfg, buildRegistry(cfg))
			if err != nil {
				return err
			}
			defer w.Close()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			slog.Info("Watching for changes", slog.String("dir", args[0]))
			w.Run(cmd, stop)
			return nil
		},
	}
}

// dirWatcher re-lints PSL files on change. Events are debounced: rapid saves
// of the same file collapse into one lint pass.
type dirWatcher struct {
	watcher    *fsnotify.Watcher
	registry   *validator.Registry
	debounce   time.Duration
	extensions map[string]bool

	pending map[string]struct{}
}

func newDirWatcher(dir string, cfg *config.Config, reg *validator.Registry) (*dirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	extensions := make(map[string]bool, len(cfg.Watch.Extensions))
	for _, ext := range cfg.Watch.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	return &dirWatcher{
		watcher:    watcher,
		registry:   reg,
		debounce:   cfg.Watch.DebounceDelay,
		extensions: extensions,
		pending:    make(map[string]struct{}),
	}, nil
}

// Close releases the underlying filesystem watcher.
func (w *dirWatcher) Close() error {
	return w.watcher.Close()
}

// Run processes events until stop fires.
func (w *dirWatcher) Run(cmd *cobra.Command, stop <-chan os.Signal) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-stop:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watch error", slog.String("error", err.Error()))
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)
		case <-timer.C:
			w.flush(cmd)
		}
	}
}

func (w *dirWatcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(event.Name))]
}

func (w *dirWatcher) flush(cmd *cobra.Command) {
	for path := range w.pending {
		delete(w.pending, path)
		report := lintFile(path, w.registry)
		printReports(cmd, []fileReport{report})
	}
}
