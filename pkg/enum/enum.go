package enum

import "context"

// Enumerator discovers files to scan.
type Enumerator interface {
	// Enumerate invokes callback once for every regular file found.
	// A callback error stops enumeration and is returned.
	Enumerate(ctx context.Context, callback func(path string) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration. It may be a file or a directory.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// RespectGitignore skips paths matched by a .gitignore file at Root.
	RespectGitignore bool

	// OnError receives paths below Root that could not be read. They are
	// skipped. A nil OnError drops them silently.
	OnError func(path string, err error)
}

// Walk enumerates the files under root with default settings.
func Walk(ctx context.Context, root string, callback func(path string) error) error {
	return NewFilesystemEnumerator(Config{Root: root}).Enumerate(ctx, callback)
}
