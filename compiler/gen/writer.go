package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer stores the generated files of a partition.
type Writer interface {
	// Clear creates dir if needed and removes everything it contains.
	Clear(dir string) error
	// Write writes the named file in dir.
	Write(dir, name string, data []byte) error
	// Remove removes the named file from dir.
	Remove(dir, name string) error
}

// DirWriter writes the generated files to the file system.
type DirWriter struct{}

// Clear implements Writer.
func (DirWriter) Clear(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("clear output directory: %w", err)
		}
	}
	return nil
}

// Write implements Writer.
func (DirWriter) Write(dir, name string, data []byte) error {
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

// Remove implements Writer. A missing file is not an error.
func (DirWriter) Remove(dir, name string) error {
	err := os.Remove(filepath.Join(dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
