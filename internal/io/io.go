package io

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rjeczalik/notify"
)

type fileStats struct {
	exists  bool
	size    int64
	modTime time.Time
}

func statFile(path string) fileStats {
	info, err := os.Stat(path)
	if err != nil { return fileStats{} }
	return fileStats{exists: true, size: info.Size(), modTime: info.ModTime()}
}

// FileWatcher reports changes made to one file by other processes. The
// directory is watched rather than the file so that editors which replace the
// file on save are noticed too.
type FileWatcher struct {
	filePath  string
	lastStats fileStats
	changed   bool
	events    chan notify.EventInfo
	mu        sync.Mutex
}

func NewFileWatcher(filePath string) (*FileWatcher, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil { return nil, err }

	// notify reports canonical paths
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil { return nil, err }

	fw := &FileWatcher{filePath: filepath.Join(dir, filepath.Base(abs))}
	fw.lastStats = statFile(fw.filePath)
	return fw, nil
}

func (fw *FileWatcher) StartWatch() error {
	events := make(chan notify.EventInfo, 16)
	err := notify.Watch(filepath.Dir(fw.filePath), events, notify.All)
	if err != nil { return fmt.Errorf("watch %s: %w", fw.filePath, err) }
	fw.events = events

	go func() {
		for e := range events {
			if e.Path() != fw.filePath { continue }
			fw.check()
		}
	}()
	return nil
}

func (fw *FileWatcher) check() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	stats := statFile(fw.filePath)
	if stats != fw.lastStats {
		fw.lastStats = stats
		fw.changed = true
	}
}

// UpdateStats records the file as it is now; call it after our own writes.
func (fw *FileWatcher) UpdateStats() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.lastStats = statFile(fw.filePath)
	fw.changed = false
}

// TakeChanged reports whether the file changed since the last call or the
// last UpdateStats, and clears the flag.
func (fw *FileWatcher) TakeChanged() bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	changed := fw.changed
	fw.changed = false
	return changed
}

func (fw *FileWatcher) Stop() {
	if fw.events == nil { return }
	notify.Stop(fw.events)
	close(fw.events)
	fw.events = nil
}
