// Package buffer holds the lines of the file being edited.
//
// Lines are kept in a doubly linked list whose nodes live in an arena slice
// and point at each other by index. Released slots are reused by later
// inserts, so a long editing session does not grow the arena without bound.
package buffer

import (
	"errors"
	"fmt"
)

// ErrInvalidLine is returned for a line number outside the valid range.
var ErrInvalidLine = errors.New("invalid line number")

const none = -1

type node struct {
	text string
	prev int
	next int
}

type Buffer struct {
	nodes    []node // arena, linked by index
	free     []int  // released arena slots
	head     int    // first line or none
	tail     int    // last line or none
	count    int    // number of linked lines
	modified bool   // unsaved changes since load/save
}

func New() *Buffer {
	return &Buffer{head: none, tail: none}
}

func (b *Buffer) Len() int       { return b.count }
func (b *Buffer) Modified() bool { return b.modified }

// MarkSaved clears the modified flag.
func (b *Buffer) MarkSaved() { b.modified = false }

// MarkModified sets the modified flag without touching lines.
func (b *Buffer) MarkModified() { b.modified = true }

// Reset drops every line and the modified flag.
func (b *Buffer) Reset() {
	b.nodes = b.nodes[:0]
	b.free = b.free[:0]
	b.head, b.tail, b.count = none, none, 0
	b.modified = false
}

func (b *Buffer) alloc(text string) int {
	n := node{text: text, prev: none, next: none}
	if k := len(b.free); k > 0 {
		i := b.free[k-1]
		b.free = b.free[:k-1]
		b.nodes[i] = n
		return i
	}
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1
}

func (b *Buffer) release(i int) {
	b.nodes[i] = node{prev: none, next: none}
	b.free = append(b.free, i)
}

// nodeAt walks to the n-th line (1-based) from whichever end is closer.
func (b *Buffer) nodeAt(n int) int {
	if n <= b.count/2+1 {
		i := b.head
		for k := 1; k < n; k++ {
			i = b.nodes[i].next
		}
		return i
	}
	i := b.tail
	for k := b.count; k > n; k-- {
		i = b.nodes[i].prev
	}
	return i
}

// Append adds a line after the last one.
func (b *Buffer) Append(text string) {
	i := b.alloc(text)
	if b.tail == none {
		b.head, b.tail = i, i
	} else {
		b.nodes[b.tail].next = i
		b.nodes[i].prev = b.tail
		b.tail = i
	}
	b.count++
	b.modified = true
}

// InsertBefore puts text in front of line n. n may be count+1, which appends.
func (b *Buffer) InsertBefore(n int, text string) error {
	if n < 1 || n > b.count+1 {
		return fmt.Errorf("insert at %d of %d: %w", n, b.count, ErrInvalidLine)
	}
	if n == b.count+1 {
		b.Append(text)
		return nil
	}

	at := b.nodeAt(n)
	i := b.alloc(text)
	prev := b.nodes[at].prev
	b.nodes[i].next = at
	b.nodes[i].prev = prev
	if prev == none {
		b.head = i
	} else {
		b.nodes[prev].next = i
	}
	b.nodes[at].prev = i

	b.count++
	b.modified = true
	return nil
}

// Delete unlinks line n and returns its text.
func (b *Buffer) Delete(n int) (string, error) {
	if n < 1 || n > b.count {
		return "", fmt.Errorf("delete %d of %d: %w", n, b.count, ErrInvalidLine)
	}

	at := b.nodeAt(n)
	nd := b.nodes[at]
	if nd.prev == none {
		b.head = nd.next
	} else {
		b.nodes[nd.prev].next = nd.next
	}
	if nd.next == none {
		b.tail = nd.prev
	} else {
		b.nodes[nd.next].prev = nd.prev
	}
	b.release(at)

	b.count--
	b.modified = true
	return nd.text, nil
}

// Line returns the text of line n.
func (b *Buffer) Line(n int) (string, error) {
	if n < 1 || n > b.count {
		return "", fmt.Errorf("line %d of %d: %w", n, b.count, ErrInvalidLine)
	}
	return b.nodes[b.nodeAt(n)].text, nil
}

// Each calls fn for every line in order with its 1-based number.
// Iteration stops early when fn returns false.
func (b *Buffer) Each(fn func(n int, text string) bool) {
	n := 1
	for i := b.head; i != none; i = b.nodes[i].next {
		if !fn(n, b.nodes[i].text) {
			return
		}
		n++
	}
}

func (b *Buffer) Lines() []string {
	lines := make([]string, 0, b.count)
	b.Each(func(_ int, text string) bool {
		lines = append(lines, text)
		return true
	})
	return lines
}
