package ledger

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultPath returns the record location: ~/.arcade/highscores.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "highscores.json"
	}
	return filepath.Join(home, ".arcade", "highscores.json")
}

// FileBackend keeps the record in a single file.
type FileBackend struct {
	Path string
}

// Read returns the file contents.
func (f FileBackend) Read() ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Write replaces the file through a temporary file and rename, so a crash
// leaves either the old or the new record.
func (f FileBackend) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".highscores-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best-effort cleanup, gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // Best-effort close on write failure
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

// Open creates a file-backed ledger. A leading ~ in path is expanded and an
// empty path selects DefaultPath.
func Open(path string, logger *log.Logger) (*Ledger, error) {
	if path == "" {
		path = DefaultPath()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ledger: expand %s: %w", path, err)
		}
		path = filepath.Join(home, path[2:])
	}
	return New(FileBackend{Path: path}, logger), nil
}

// MemoryBackend keeps the record in memory. Err, when set, is returned by
// every call, simulating broken storage.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
	Err  error
}

// NewMemoryBackend returns a backend holding data; nil means nothing stored.
func NewMemoryBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{data: data}
}

func (m *MemoryBackend) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.data == nil {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns the stored record.
func (m *MemoryBackend) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
