package editor

import (
	"fmt"
	"strings"

	"sled/internal/buffer"
	"sled/internal/git"
	. "sled/internal/logger"
)

// OpenFile loads e.Filename into the buffer. A file that does not exist yet,
// or one that cannot be read, starts an empty buffer; read errors are printed
// and the session goes on.
func (e *Editor) OpenFile() error {
	e.History.Clear()

	existed, err := e.Buffer.Load(e.Filename)
	if err != nil {
		e.Buffer.Reset()
		e.printError(err)
		return nil
	}

	if !existed {
		fmt.Fprintf(e.out, "New file: '%s'\n", e.Filename)
	}
	Log.Infow("open", "file", e.Filename, "existed", existed, "lines", e.Buffer.Len())
	return nil
}

// WriteFile saves the buffer to e.Filename.
func (e *Editor) WriteFile() error {
	// the disk copy only feeds the log entry
	var disk []string
	if Log.Enabled() { disk = e.readDisk() }

	if err := e.Buffer.Save(e.Filename); err != nil { return err }

	if e.Watcher != nil { e.Watcher.UpdateStats() }

	if !Log.Enabled() { return nil }
	lines := e.Buffer.Lines()
	added, removed := git.ChangeStats(disk, lines)
	Log.Infow("save", "file", e.Filename, "lines", len(lines), "added", added, "removed", removed)
	return nil
}

// readDisk returns the lines currently saved, or none if they cannot be read.
func (e *Editor) readDisk() []string {
	disk := buffer.New()
	if _, err := disk.Load(e.Filename); err != nil {
		Log.Error("read disk copy:", err.Error())
	}
	return disk.Lines()
}

// DiffAgainstDisk returns a unified diff from the saved file to the buffer.
func (e *Editor) DiffAgainstDisk() (string, error) {
	disk := buffer.New()
	if _, err := disk.Load(e.Filename); err != nil { return "", err }
	return git.UnifiedDiff(e.Filename+" (disk)", e.Filename+" (buffer)", disk.Lines(), e.Buffer.Lines())
}

// DiffAgainstHead returns a unified diff from the file at git HEAD to the buffer.
func (e *Editor) DiffAgainstHead() (string, error) {
	content, err := git.GetLastCommitFileContent(e.Filename)
	if err != nil { return "", err }

	head := buffer.New()
	if _, err := head.ReadFrom(strings.NewReader(content)); err != nil { return "", err }
	return git.UnifiedDiff(e.Filename+" (HEAD)", e.Filename+" (buffer)", head.Lines(), e.Buffer.Lines())
}
