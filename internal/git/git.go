package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotTracked means the file is not in a repository or not in HEAD.
var ErrNotTracked = errors.New("file is not tracked by git")

// GetLastCommitFileContent returns the content of filePath as committed at
// HEAD of the repository containing it.
func GetLastCommitFileContent(filePath string) (string, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil { return "", fmt.Errorf("error resolving path: %w", err) }

	// the worktree root comes back with symlinks resolved
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil { return "", fmt.Errorf("error resolving path: %w", err) }
	abs = filepath.Join(dir, filepath.Base(abs))

	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) { return "", fmt.Errorf("%s: %w", filePath, ErrNotTracked) }
	if err != nil { return "", fmt.Errorf("error opening git repository: %w", err) }

	wt, err := r.Worktree()
	if err != nil { return "", fmt.Errorf("error getting worktree: %w", err) }

	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil { return "", fmt.Errorf("error resolving path in worktree: %w", err) }

	ref, err := r.Head()
	if err != nil { return "", fmt.Errorf("error getting repository HEAD: %w", err) }

	commit, err := r.CommitObject(ref.Hash())
	if err != nil { return "", fmt.Errorf("error getting commit object: %w", err) }

	tree, err := commit.Tree()
	if err != nil { return "", fmt.Errorf("error getting commit tree: %w", err) }

	file, err := tree.File(filepath.ToSlash(rel))
	if errors.Is(err, object.ErrFileNotFound) { return "", fmt.Errorf("%s: %w", filePath, ErrNotTracked) }
	if err != nil { return "", fmt.Errorf("error getting file from tree: %w", err) }

	content, err := file.Contents()
	if err != nil { return "", fmt.Errorf("error getting file contents: %w", err) }

	return content, nil
}
