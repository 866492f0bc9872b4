package operations

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

type Action string

const (
	Append Action = "append"
	Insert Action = "insert"
	Delete Action = "delete"
)

// Operation is one applied edit. Line is the 1-based position the text ended
// up at (append, insert) or was removed from (delete).
type Operation struct {
	Action Action `json:"action"`
	Line   int    `json:"line"`
	Text   string `json:"text"`
}

// History is the undo stack of a session.
type History struct {
	ops []Operation
}

func (h *History) Push(op Operation) { h.ops = append(h.ops, op) }
func (h *History) Len() int          { return len(h.ops) }
func (h *History) Clear()            { h.ops = h.ops[:0] }

// Pop removes and returns the most recent operation.
func (h *History) Pop() (Operation, bool) {
	if len(h.ops) == 0 { return Operation{}, false }
	op := h.ops[len(h.ops)-1]
	h.ops = h.ops[:len(h.ops)-1]
	return op, true
}

// Entry is one journal record.
type Entry struct {
	Time      time.Time `json:"time"`
	File      string    `json:"file"`
	Undo      bool      `json:"undo,omitempty"`
	Operation
}

// Journal appends every edit as a json line, so a crashed session can be
// reconstructed by replaying the file.
type Journal struct {
	file    *os.File
	encoder *json.Encoder
	now     func() time.Time
}

func OpenJournal(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil { return nil, fmt.Errorf("open journal %s: %w", path, err) }
	return &Journal{file: file, encoder: json.NewEncoder(file), now: time.Now}, nil
}

func (j *Journal) Record(filename string, op Operation, undo bool) error {
	entry := Entry{Time: j.now(), File: filename, Undo: undo, Operation: op}
	if err := j.encoder.Encode(entry); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

func (j *Journal) Close() error {
	return j.file.Close()
}

// ReadJournal decodes every entry of a journal file in order.
func ReadJournal(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil { return nil, fmt.Errorf("open journal %s: %w", path, err) }
	defer file.Close()

	entries := []Entry{}
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return entries, fmt.Errorf("read journal %s: %w", path, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
