package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"steinschliff/internal/logger"
)

const watchDebounce = 300 * time.Millisecond

// relevant reports whether ev should trigger a rebuild: a YAML file was
// created, written, removed or renamed. Hidden files are ignored.
func relevant(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, ".yaml") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// addTree watches dir and every non-hidden directory beneath it. A missing
// dir is skipped.
func addTree(w *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// watch calls rebuild after changes under dirs settle for debounce, until
// ctx is done. Events are handled on the calling goroutine so rebuilds
// never overlap.
func watch(ctx context.Context, dirs []string, debounce time.Duration, rebuild func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := addTree(w, dir); err != nil {
			return err
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						logger.Warn("%v", err)
					}
					continue
				}
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("change: %s", ev)
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		case <-timer.C:
			if err := rebuild(); err != nil {
				return err
			}
		}
	}
}
