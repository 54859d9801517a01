// filepath: internal/storage/paths.go
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// MediaFilePrefix starts every recording file name.
const MediaFilePrefix = "voice_entry_"

// mediaFileName builds "voice_entry_<ULID>.<ext>".
func mediaFileName(ext string) string {
	return fmt.Sprintf("%s%s.%s", MediaFilePrefix, ulid.Make().String(), ext)
}

// within reports whether path resolves to a file directly or indirectly under root.
func within(root, path string) bool {
	cleanedRoot := filepath.Clean(root)
	cleanedPath := filepath.Clean(path)
	if cleanedPath == cleanedRoot {
		return false
	}
	return strings.HasPrefix(cleanedPath, cleanedRoot+string(filepath.Separator))
}
