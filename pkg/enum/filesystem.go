package enum

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FilesystemEnumerator walks a directory tree depth-first with an explicit
// stack of pending directories.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// Enumerate walks the tree under Root. Only a failure to stat or list Root
// itself is returned as an error; unreadable entries below it go to OnError.
// Files are visited in lexical order within a directory, before its
// subdirectories.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback func(path string) error) error {
	root := e.config.Root

	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil
		}
		return callback(root)
	}

	// Load .gitignore patterns if present
	var ignore *gitignore.GitIgnore
	if e.config.RespectGitignore {
		gitignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
		}
	}

	visited := make(map[string]bool)
	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if e.config.FollowSymlinks {
			real, err := filepath.EvalSymlinks(dir)
			if err == nil {
				if visited[real] {
					continue
				}
				visited[real] = true
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return err
			}
			e.reportError(dir, err)
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			if !e.config.IncludeHidden && isHidden(entry.Name()) {
				continue
			}

			mode := entry.Type()
			if mode&fs.ModeSymlink != 0 {
				if !e.config.FollowSymlinks {
					continue
				}
				target, err := os.Stat(path)
				if err != nil {
					e.reportError(path, err)
					continue
				}
				mode = target.Mode().Type()
			}

			if ignore != nil && isIgnored(ignore, root, path, mode.IsDir()) {
				continue
			}

			switch {
			case mode.IsDir():
				subdirs = append(subdirs, path)
			case mode.IsRegular():
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := callback(path); err != nil {
					return err
				}
			}
		}

		// Push in reverse so subdirectories pop in lexical order.
		slices.Reverse(subdirs)
		stack = append(stack, subdirs...)
	}

	return nil
}

func (e *FilesystemEnumerator) reportError(path string, err error) {
	if e.config.OnError != nil {
		e.config.OnError(path, err)
	}
}

// isIgnored matches path relative to root against the root .gitignore.
func isIgnored(ignore *gitignore.GitIgnore, root, path string, isDir bool) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if isDir && ignore.MatchesPath(relPath+"/") {
		return true
	}
	return ignore.MatchesPath(relPath)
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
