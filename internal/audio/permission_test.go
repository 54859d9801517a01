// filepath: internal/audio/permission_test.go
package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePermissionStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "permission.toml")
	s := NewFilePermissionStore(path)

	assert.Equal(t, PermissionUndetermined, s.Status())

	require.NoError(t, s.Set(true))
	assert.Equal(t, PermissionGranted, s.Status())
	assert.Equal(t, PermissionGranted, NewFilePermissionStore(path).Status(), "persisted across instances")

	require.NoError(t, s.Set(false))
	assert.Equal(t, PermissionDenied, s.Status())

	require.NoError(t, s.Reset())
	assert.Equal(t, PermissionUndetermined, s.Status())
	require.NoError(t, s.Reset(), "reset of a missing file is fine")
}

func TestFilePermissionStore_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permission.toml")
	require.NoError(t, os.WriteFile(path, []byte("microphone = \"maybe\"\n"), 0644))
	assert.Equal(t, PermissionUndetermined, NewFilePermissionStore(path).Status())

	require.NoError(t, os.WriteFile(path, []byte("not toml ==="), 0644))
	assert.Equal(t, PermissionUndetermined, NewFilePermissionStore(path).Status())
}
