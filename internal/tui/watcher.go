package tui

import (
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the watcher waits after the last change.
const debounceDelay = 200 * time.Millisecond

// StartWatcher watches the data file for external changes and sends
// FileChangedMsg to the program. The parent directory is watched because
// atomic writes replace the file rather than modify it. Files sharing the
// data file's name as prefix (SQLite -wal and -shm files) count as changes.
func StartWatcher(dataPath string, program *tea.Program) (func(), error) {
	return watch(dataPath, func() { program.Send(FileChangedMsg{}) })
}

func watch(dataPath string, notify func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dataPath)
	base := filepath.Base(dataPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(event.Name), base) {
					continue
				}
				if event.Op == fsnotify.Chmod {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, notify)

			case <-watcher.Errors:
				// Ignore watcher errors silently

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}
