// filepath: internal/storage/media_store.go
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"voicejournal/internal/logging"
)

// ErrOutsideRoot is returned for paths that do not live under the media root.
var ErrOutsideRoot = errors.New("path is outside the media root")

// MediaStore gives access to the recordings kept in a single directory.
type MediaStore struct {
	Root      string
	Extension string
}

// NewMediaStore resolves root to an absolute path and creates it if missing.
func NewMediaStore(root, extension string) (*MediaStore, error) {
	if root == "" {
		return nil, fmt.Errorf("media root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("could not resolve media root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("could not create media root: %w", err)
	}
	ext := strings.TrimPrefix(strings.ToLower(extension), ".")
	if ext == "" {
		ext = "wav"
	}
	return &MediaStore{Root: abs, Extension: ext}, nil
}

// NewMediaPath returns a fresh, unused path for a recording.
func (s *MediaStore) NewMediaPath() string {
	return filepath.Join(s.Root, mediaFileName(s.Extension))
}

// Exists reports whether a regular file is present at path.
func (s *MediaStore) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Size returns the size of the file at path in bytes.
func (s *MediaStore) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Delete removes a media file under the root. It returns true when the file
// is gone afterwards, including when it did not exist.
func (s *MediaStore) Delete(path string) bool {
	if !within(s.Root, path) {
		logging.Log.Warnf("Refusing to delete '%s': %v", path, ErrOutsideRoot)
		return false
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Log.Warnf("Failed to delete media file '%s': %v", path, err)
		return false
	}
	return true
}

// ListAll returns the absolute paths of every media file in the root, sorted.
func (s *MediaStore) ListAll() ([]string, error) {
	dirEntries, err := os.ReadDir(s.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("could not list media root: %w", err)
	}

	suffix := "." + s.Extension
	paths := make([]string, 0, len(dirEntries))
	for _, d := range dirEntries {
		if !d.Type().IsRegular() || !strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(s.Root, d.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// AvailableFreeSpace returns the bytes available on the volume holding the root.
func (s *MediaStore) AvailableFreeSpace() (int64, error) {
	return freeBytes(s.Root)
}

// TotalSize sums the sizes of all listed media files.
func (s *MediaStore) TotalSize() (int64, error) {
	paths, err := s.ListAll()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, p := range paths {
		size, err := s.Size(p)
		if err != nil {
			// Deleted between listing and stat.
			continue
		}
		total += size
	}
	return total, nil
}

// Load reads a media file under the root into memory.
func (s *MediaStore) Load(path string) ([]byte, error) {
	if !within(s.Root, path) {
		return nil, ErrOutsideRoot
	}
	return os.ReadFile(path)
}

// Import copies audio from r into a new media file and returns its path and size.
func (s *MediaStore) Import(r io.Reader) (string, int64, error) {
	path := s.NewMediaPath()
	n, err := SaveFile(r, path)
	if err != nil {
		return "", 0, err
	}
	return path, n, nil
}
