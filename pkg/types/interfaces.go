package types

import "io/fs"

// FS is the slice of filesystem behaviour a store needs to load and save
// its backing file.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	// WriteFile truncates name before writing, creating it if needed.
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
}
