package buffer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkLinks walks the list both ways and verifies head, tail and count agree.
func checkLinks(t *testing.T, b *Buffer) {
	t.Helper()
	if b.count == 0 {
		assert.Equal(t, none, b.head)
		assert.Equal(t, none, b.tail)
		return
	}
	require.NotEqual(t, none, b.head)
	require.NotEqual(t, none, b.tail)
	assert.Equal(t, none, b.nodes[b.head].prev)
	assert.Equal(t, none, b.nodes[b.tail].next)

	forward := []int{}
	for i := b.head; i != none; i = b.nodes[i].next {
		forward = append(forward, i)
		require.LessOrEqual(t, len(forward), b.count, "forward walk longer than count")
	}
	backward := []int{}
	for i := b.tail; i != none; i = b.nodes[i].prev {
		backward = append(backward, i)
		require.LessOrEqual(t, len(backward), b.count, "backward walk longer than count")
	}
	require.Len(t, forward, b.count)
	require.Len(t, backward, b.count)
	for k := range forward {
		assert.Equal(t, forward[k], backward[len(backward)-1-k])
	}
}

func fill(texts ...string) *Buffer {
	b := New()
	for _, text := range texts {
		b.Append(text)
	}
	return b
}

func TestAppendKeepsOrder(t *testing.T) {
	b := New()
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.Modified())

	want := []string{}
	for k := 1; k <= 10; k++ {
		text := fmt.Sprintf("line %d", k)
		b.Append(text)
		want = append(want, text)
		checkLinks(t, b)
	}
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, want, b.Lines())
	assert.True(t, b.Modified())
}

func TestInsertBefore(t *testing.T) {
	tests := []struct {
		name string
		at   int
		want []string
	}{
		{name: "head", at: 1, want: []string{"new", "a", "b", "c"}},
		{name: "middle", at: 2, want: []string{"a", "new", "b", "c"}},
		{name: "before tail", at: 3, want: []string{"a", "b", "new", "c"}},
		{name: "append position", at: 4, want: []string{"a", "b", "c", "new"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := fill("a", "b", "c")
			b.MarkSaved()
			require.NoError(t, b.InsertBefore(tc.at, "new"))
			assert.Equal(t, tc.want, b.Lines())
			assert.True(t, b.Modified())
			checkLinks(t, b)
		})
	}
}

func TestInsertIntoEmpty(t *testing.T) {
	b := New()
	require.NoError(t, b.InsertBefore(1, "only"))
	assert.Equal(t, []string{"only"}, b.Lines())
	checkLinks(t, b)
}

func TestInvalidLineNumbers(t *testing.T) {
	b := fill("a", "b")
	b.MarkSaved()

	for _, n := range []int{-1, 0, 4} {
		assert.ErrorIs(t, b.InsertBefore(n, "x"), ErrInvalidLine, "insert %d", n)
	}
	for _, n := range []int{-1, 0, 3} {
		_, err := b.Delete(n)
		assert.ErrorIs(t, err, ErrInvalidLine, "delete %d", n)
		_, err = b.Line(n)
		assert.ErrorIs(t, err, ErrInvalidLine, "line %d", n)
	}

	assert.Equal(t, []string{"a", "b"}, b.Lines())
	assert.False(t, b.Modified())
	checkLinks(t, b)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		at   int
		want []string
	}{
		{name: "head", at: 1, want: []string{"b", "c"}},
		{name: "middle", at: 2, want: []string{"a", "c"}},
		{name: "tail", at: 3, want: []string{"a", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := fill("a", "b", "c")
			b.MarkSaved()
			removed, err := b.Delete(tc.at)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b", "c"}[tc.at-1], removed)
			assert.Equal(t, tc.want, b.Lines())
			assert.True(t, b.Modified())
			checkLinks(t, b)
		})
	}
}

func TestDeleteOnlyLine(t *testing.T) {
	b := fill("alone")
	_, err := b.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, none, b.head)
	assert.Equal(t, none, b.tail)
	assert.Empty(t, b.Lines())
}

func TestInsertThenDeleteRestores(t *testing.T) {
	base := []string{"one", "two", "three", "four", "five"}
	for n := 1; n <= len(base)+1; n++ {
		b := fill(base...)
		require.NoError(t, b.InsertBefore(n, "extra"))
		removed, err := b.Delete(n)
		require.NoError(t, err)
		assert.Equal(t, "extra", removed)
		assert.Equal(t, base, b.Lines(), "position %d", n)
		checkLinks(t, b)
	}
}

func TestLineWalksFromBothEnds(t *testing.T) {
	b := New()
	for k := 1; k <= 9; k++ {
		b.Append(fmt.Sprint(k))
	}
	for k := 1; k <= 9; k++ {
		text, err := b.Line(k)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(k), text)
	}
}

func TestReleasedSlotsAreReused(t *testing.T) {
	b := fill("a", "b", "c")
	_, err := b.Delete(2)
	require.NoError(t, err)
	_, err = b.Delete(1)
	require.NoError(t, err)

	b.Append("d")
	require.NoError(t, b.InsertBefore(1, "e"))
	assert.Len(t, b.nodes, 3)
	assert.Empty(t, b.free)
	assert.Equal(t, []string{"e", "c", "d"}, b.Lines())
	checkLinks(t, b)
}

func TestEachStopsEarly(t *testing.T) {
	b := fill("a", "b", "c")
	seen := []int{}
	b.Each(func(n int, _ string) bool {
		seen = append(seen, n)
		return n < 2
	})
	assert.Equal(t, []int{1, 2}, seen)
}

func TestReset(t *testing.T) {
	b := fill("a", "b")
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.Modified())
	checkLinks(t, b)
	b.Append("c")
	assert.Equal(t, []string{"c"}, b.Lines())
}
