package git

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var dmp = diffmatchpatch.New()

// JoinLines renders lines the way they are saved: each one '\n' terminated.
func JoinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// UnifiedDiff returns a unified diff from a to b with three lines of context,
// or "" when they are equal.
func UnifiedDiff(fromName, toName string, a, b []string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(JoinLines(a)),
		B:        difflib.SplitLines(JoinLines(b)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// ChangeStats counts lines added and removed going from a to b.
func ChangeStats(a, b []string) (added, removed int) {
	chars1, chars2, lineArray := dmp.DiffLinesToChars(JoinLines(a), JoinLines(b))
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	for _, diff := range diffs {
		count := strings.Count(diff.Text, "\n")
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			added += count
		case diffmatchpatch.DiffDelete:
			removed += count
		}
	}
	return added, removed
}
