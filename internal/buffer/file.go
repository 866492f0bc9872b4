package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ReadFrom appends every line of r. Only the trailing '\n' is dropped, so a
// "\r\n" file keeps its carriage returns and writes back unchanged.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	reader := bufio.NewReader(r)
	var total int64
	for {
		line, err := reader.ReadString('\n')
		total += int64(len(line))
		if len(line) > 0 {
			b.Append(strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) { return total, nil }
		if err != nil { return total, err }
	}
}

// WriteTo writes every line followed by '\n'.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	var err error
	b.Each(func(_ int, text string) bool {
		var n int
		n, err = bw.WriteString(text)
		total += int64(n)
		if err != nil { return false }
		err = bw.WriteByte('\n')
		if err == nil { total++ }
		return err == nil
	})
	if err != nil { return total, err }
	return total, bw.Flush()
}

// Load replaces the buffer with the contents of path. A missing file leaves
// an empty buffer and reports existed=false; that is not an error.
func (b *Buffer) Load(path string) (existed bool, err error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		b.Reset()
		return false, nil
	}
	if err != nil { return false, fmt.Errorf("open %s: %w", path, err) }
	defer file.Close()

	info, err := file.Stat()
	if err != nil { return true, fmt.Errorf("stat %s: %w", path, err) }
	if info.IsDir() { return true, fmt.Errorf("open %s: is a directory", path) }

	fresh := New()
	if _, err := fresh.ReadFrom(file); err != nil {
		return true, fmt.Errorf("read %s: %w", path, err)
	}
	fresh.modified = false
	*b = *fresh
	return true, nil
}

// Save truncates path and writes the buffer to it. On failure the buffer,
// including its modified flag, is left as it was.
func (b *Buffer) Save(path string) error {
	file, err := os.Create(path)
	if err != nil { return fmt.Errorf("create %s: %w", path, err) }

	if _, err := b.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil { return fmt.Errorf("close %s: %w", path, err) }

	b.modified = false
	return nil
}
