package editor

import (
	"fmt"
	"strconv"
	"strings"

	"sled/internal/buffer"
	. "sled/internal/logger"
	. "sled/internal/operations"
	"sled/internal/search"

	"github.com/acarl005/stripansi"
)

func usage(text string) error {
	return fmt.Errorf("%w: %s", ErrUsage, text)
}

func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil { return 0, fmt.Errorf("%q: %w", s, buffer.ErrInvalidLine) }
	return n, nil
}

// clean drops terminal escape sequences pasted along with typed text.
func (e *Editor) clean(text string) string {
	if !e.Config.StripANSI { return text }
	return stripansi.Strip(text)
}

func (e *Editor) printLine(n int, text string) {
	fmt.Fprintf(e.out, "%*d: %s\n", e.Config.NumberWidth, n, text)
}

func (e *Editor) OnPrint() {
	lines := e.Buffer.Lines()
	if e.Highlighter != nil {
		lines = e.Highlighter.Colorize(lines, e.Filename)
	}
	for i, line := range lines {
		e.printLine(i+1, line)
	}
}

func (e *Editor) OnAppend(argument string) {
	text := e.clean(argument)
	e.Buffer.Append(text)
	e.record(Operation{Action: Append, Line: e.Buffer.Len(), Text: text})
}

func (e *Editor) OnInsert(argument string) error {
	number, text, found := strings.Cut(argument, " ")
	if !found { return usage("i <line> <text>") }

	n, err := parseLineNumber(number)
	if err != nil { return err }

	text = e.clean(text)
	if err := e.Buffer.InsertBefore(n, text); err != nil { return err }
	e.record(Operation{Action: Insert, Line: n, Text: text})
	return nil
}

func (e *Editor) OnDelete(argument string) error {
	n, err := parseLineNumber(argument)
	if err != nil { return err }

	text, err := e.Buffer.Delete(n)
	if err != nil { return err }
	e.record(Operation{Action: Delete, Line: n, Text: text})
	return nil
}

func (e *Editor) OnSave() error {
	if err := e.WriteFile(); err != nil { return err }
	fmt.Fprintf(e.out, "File '%s' saved.\n", e.Filename)
	return nil
}

func (e *Editor) OnHelp() {
	fmt.Fprint(e.out, `--- sled help ---
p              - print all lines
a <text>       - append a line at the end
i <n> <text>   - insert before line <n>
d <n>          - delete line <n>
s              - save the file
u              - undo the last append, insert or delete
f <text>       - list lines containing <text>
c              - show changes against the file on disk
g              - show changes against the last git commit
y <n>          - copy line <n> to the clipboard
h              - show this help
q              - quit
`)
}

func (e *Editor) OnQuit() {
	if e.Buffer.Modified() && e.confirm("There are unsaved changes. Save them? (y/n): ") {
		if err := e.OnSave(); err != nil { e.printError(err) }
	}
	fmt.Fprintln(e.out, "Exiting.")
	Log.Info("quit", e.Filename)
}

// OnUndo reverts the most recent edit by applying its inverse.
func (e *Editor) OnUndo() error {
	op, ok := e.History.Pop()
	if !ok { return ErrNothingToUndo }

	var err error
	switch op.Action {
	case Append, Insert:
		_, err = e.Buffer.Delete(op.Line)
	case Delete:
		err = e.Buffer.InsertBefore(op.Line, op.Text)
	default:
		err = fmt.Errorf("unknown operation %q", op.Action)
	}
	if err != nil { return fmt.Errorf("undo %s at line %d: %w", op.Action, op.Line, err) }

	e.journal(op, true)
	fmt.Fprintf(e.out, "Undone %s at line %d.\n", op.Action, op.Line)
	return nil
}

func (e *Editor) OnFind(pattern string) error {
	if pattern == "" { return usage("f <text>") }

	lines := e.Buffer.Lines()
	found := search.MatchingLines(lines, pattern)
	if len(found) == 0 {
		fmt.Fprintln(e.out, "No matches.")
		return nil
	}
	for _, n := range found {
		e.printLine(n, lines[n-1])
	}
	return nil
}

func (e *Editor) OnChanges() error {
	diff, err := e.DiffAgainstDisk()
	if err != nil { return err }
	e.printDiff(diff)
	return nil
}

func (e *Editor) OnGitDiff() error {
	diff, err := e.DiffAgainstHead()
	if err != nil { return err }
	e.printDiff(diff)
	return nil
}

func (e *Editor) printDiff(diff string) {
	if diff == "" {
		fmt.Fprintln(e.out, "No changes.")
		return
	}
	fmt.Fprint(e.out, diff)
}

func (e *Editor) OnCopy(argument string) error {
	n, err := parseLineNumber(argument)
	if err != nil { return err }

	text, err := e.Buffer.Line(n)
	if err != nil { return err }
	if err := e.Clipboard(text); err != nil { return fmt.Errorf("copy line %d: %w", n, err) }

	fmt.Fprintf(e.out, "Copied line %d.\n", n)
	return nil
}
