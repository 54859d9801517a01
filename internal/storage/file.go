// filepath: internal/storage/file.go
// Package storage manages the media directory that holds recordings.
package storage

import (
	"fmt"
	"io"
	"os"
)

// SaveFile saves file data from a reader to a specified path.
// It streams the file to avoid loading it entirely into memory.
func SaveFile(fileData io.Reader, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()

	fileSize, err := io.Copy(f, fileData)
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("could not write file: %w", err)
	}

	return fileSize, nil
}
