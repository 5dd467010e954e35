package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// ListDirs returns the names of the subdirectories of path, sorted.
	// A missing path yields an empty list.
	ListDirs(path string) ([]string, error)

	// IsEmptyDir reports whether path is missing or has no entries.
	IsEmptyDir(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}
