// Package osfilesystem backs ports.FileSystem with the host filesystem.
package osfilesystem

import (
	"os"
	"path/filepath"

	"github.com/user/castcut/pkg/ports"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// FileSystem is the real-disk implementation of ports.FileSystem.
type FileSystem struct{}

// New returns a FileSystem rooted at the process working directory.
func New() *FileSystem {
	return &FileSystem{}
}

// ReadFile returns the full contents of path.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating missing parent directories.
// Output and debug targets may live in trees that do not exist yet.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, filePerm)
}

// MkdirAll creates path and any missing parents.
func (fs *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, dirPerm)
}

// Exists reports whether path names an existing file or directory.
func (fs *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Remove deletes a file or empty directory.
func (fs *FileSystem) Remove(path string) error {
	return os.Remove(path)
}

var _ ports.FileSystem = (*FileSystem)(nil)
