package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"sled/internal/buffer"
	"sled/internal/config"
	"sled/internal/highlighter"
	. "sled/internal/io"
	. "sled/internal/logger"
	"sled/internal/operations"

	"github.com/atotto/clipboard"
)

var (
	ErrUsage         = errors.New("usage")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Editor is one editing session over a single file.
type Editor struct {
	Filename string         // path given on the command line
	Buffer   *buffer.Buffer // lines being edited
	Config   config.Config  // prompt, number width, highlight, journal...

	History operations.History  // stack for undo operations
	Journal *operations.Journal // nil when journaling is off

	Watcher     *FileWatcher             // nil when watching is off
	Highlighter *highlighter.Highlighter // nil when highlighting is off
	Clipboard   func(text string) error  // destination of y

	in  *bufio.Reader
	out io.Writer
}

func NewEditor(filename string, conf config.Config, in io.Reader, out io.Writer) *Editor {
	return &Editor{
		Filename:  filename,
		Buffer:    buffer.New(),
		Config:    conf,
		Clipboard: writeClipboard,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

func writeClipboard(text string) error {
	if clipboard.Unsupported { return errors.New("clipboard is not available") }
	return clipboard.WriteAll(text)
}

// Start loads the file and brings up the optional journal, watcher and
// highlighter. Problems are reported to the user and the session still
// starts; the optional parts that failed stay off.
func (e *Editor) Start() error {
	Log.Info("starting sled", e.Filename)

	if err := e.OpenFile(); err != nil { return err }

	if e.Config.Journal != "" {
		journal, err := operations.OpenJournal(e.Config.Journal)
		if err != nil {
			e.printError(err)
		} else {
			e.Journal = journal
		}
	}

	if e.Config.Watch {
		if err := e.startWatch(); err != nil {
			Log.Error("watch disabled:", err.Error())
		}
	}

	if e.Config.Highlight {
		e.Highlighter = highlighter.New(e.Config.Theme)
	}
	return nil
}

func (e *Editor) startWatch() error {
	fw, err := NewFileWatcher(e.Filename)
	if err != nil { return err }
	if err := fw.StartWatch(); err != nil { return err }
	e.Watcher = fw
	return nil
}

// Close stops background work. It does not save.
func (e *Editor) Close() {
	if e.Watcher != nil {
		e.Watcher.Stop()
		e.Watcher = nil
	}
	if e.Journal != nil {
		if err := e.Journal.Close(); err != nil { Log.Error("close journal:", err.Error()) }
		e.Journal = nil
	}
}

// Run reads and executes commands until q or end of input.
func (e *Editor) Run() error {
	fmt.Fprintln(e.out, "Simple Line Editor. Type 'h' for help, 'q' to quit.")

	for {
		e.warnIfChanged()
		fmt.Fprint(e.out, e.Config.Prompt)

		line, err := e.in.ReadString('\n')
		if line != "" && e.Execute(line) { return nil }
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(e.out)
			Log.Info("end of input")
			return nil
		}
		if err != nil { return fmt.Errorf("read command: %w", err) }
	}
}

func (e *Editor) warnIfChanged() {
	if e.Watcher == nil || !e.Watcher.TakeChanged() { return }
	fmt.Fprintf(e.out, "Warning: '%s' changed on disk since it was loaded or saved.\n", e.Filename)
	Log.Info("file changed on disk", e.Filename)
}

// Execute runs one command line and reports whether the session should end.
func (e *Editor) Execute(input string) (quit bool) {
	input = strings.TrimRight(input, "\r\n")
	if input == "" { return false }

	command := input[0]
	argument := strings.TrimPrefix(input[1:], " ")
	Log.Debug("command", input)

	var err error
	switch command {
	case 'p':
		e.OnPrint()
	case 'a':
		e.OnAppend(argument)
	case 'i':
		err = e.OnInsert(argument)
	case 'd':
		err = e.OnDelete(argument)
	case 's':
		err = e.OnSave()
	case 'h':
		e.OnHelp()
	case 'q':
		e.OnQuit()
		return true
	case 'u':
		err = e.OnUndo()
	case 'f':
		err = e.OnFind(argument)
	case 'c':
		err = e.OnChanges()
	case 'g':
		err = e.OnGitDiff()
	case 'y':
		err = e.OnCopy(argument)
	default:
		fmt.Fprintln(e.out, "Unknown command. Type 'h' for help.")
	}

	if err != nil { e.printError(err) }
	return false
}

func (e *Editor) printError(err error) {
	Log.Error(err.Error())
	switch {
	case errors.Is(err, buffer.ErrInvalidLine):
		fmt.Fprintln(e.out, "Error: invalid line number.")
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(e.out, "Usage:", strings.TrimPrefix(err.Error(), ErrUsage.Error()+": "))
	default:
		fmt.Fprintf(e.out, "Error: %v\n", err)
	}
}

// record pushes an applied edit on the undo stack and journals it.
func (e *Editor) record(op operations.Operation) {
	e.History.Push(op)
	e.journal(op, false)
}

func (e *Editor) journal(op operations.Operation, undo bool) {
	if e.Journal == nil { return }
	if err := e.Journal.Record(e.Filename, op, undo); err != nil {
		e.printError(err)
	}
}

// confirm asks a yes/no question; anything but an answer starting with y is no.
func (e *Editor) confirm(question string) bool {
	fmt.Fprint(e.out, question)
	answer, _ := e.in.ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer != "" && (answer[0] == 'y' || answer[0] == 'Y')
}
