// filepath: internal/audio/permission.go
package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"voicejournal/internal/logging"

	"github.com/BurntSushi/toml"
)

// PermissionStatus is the persisted answer to the microphone prompt.
type PermissionStatus string

const (
	PermissionUndetermined PermissionStatus = "undetermined"
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
)

// PermissionStore persists the microphone decision.
type PermissionStore interface {
	Status() PermissionStatus
	Set(granted bool) error
	Reset() error
}

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

type permissionFile struct {
	Microphone PermissionStatus `toml:"microphone"`
	UpdatedAt  time.Time        `toml:"updated_at"`
}

// FilePermissionStore keeps the decision in a small TOML file.
type FilePermissionStore struct {
	path string
	mu   sync.Mutex
}

func NewFilePermissionStore(path string) *FilePermissionStore {
	return &FilePermissionStore{path: path}
}

func (s *FilePermissionStore) Status() PermissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pf permissionFile
	if _, err := toml.DecodeFile(s.path, &pf); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Log.Warnf("Could not read permission file '%s': %v", s.path, err)
		}
		return PermissionUndetermined
	}
	switch pf.Microphone {
	case PermissionGranted, PermissionDenied:
		return pf.Microphone
	}
	return PermissionUndetermined
}

func (s *FilePermissionStore) Set(granted bool) error {
	status := PermissionDenied
	if granted {
		status = PermissionGranted
	}
	return s.write(permissionFile{Microphone: status, UpdatedAt: time.Now().UTC()})
}

func (s *FilePermissionStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not reset permission: %w", err)
	}
	return nil
}

func (s *FilePermissionStore) write(pf permissionFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create permission directory: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("could not write permission file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(pf); err != nil {
		return fmt.Errorf("could not encode permission file: %w", err)
	}
	return nil
}

// MemoryPermissionStore is an in-process store, used by tests and headless runs.
type MemoryPermissionStore struct {
	mu     sync.Mutex
	status PermissionStatus
}

func NewMemoryPermissionStore(status PermissionStatus) *MemoryPermissionStore {
	return &MemoryPermissionStore{status: status}
}

func (m *MemoryPermissionStore) Status() PermissionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == "" {
		return PermissionUndetermined
	}
	return m.status
}

func (m *MemoryPermissionStore) Set(granted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = PermissionDenied
	if granted {
		m.status = PermissionGranted
	}
	return nil
}

func (m *MemoryPermissionStore) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = PermissionUndetermined
	return nil
}

var (
	_ PermissionStore = (*FilePermissionStore)(nil)
	_ PermissionStore = (*MemoryPermissionStore)(nil)
)
