package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements FileSystem for in-memory testing.
// Paths are normalized to forward slashes, so tests behave identically
// across platforms. Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu    sync.Mutex
	files map[string]*memoryEntry
}

type memoryEntry struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemoryFileSystem creates a new empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string]*memoryEntry),
	}
}

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.files[normalize(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	content := make([]byte, len(entry.content))
	copy(content, entry.content)
	return content, nil
}

func (m *MemoryFileSystem) WriteFile(p string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	content := make([]byte, len(data))
	copy(content, data)
	m.files[normalize(p)] = &memoryEntry{
		content: content,
		mode:    perm,
		modTime: time.Now(),
	}
	return nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	norm := normalize(p)
	entry, ok := m.files[norm]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{
		name:    path.Base(norm),
		size:    int64(len(entry.content)),
		mode:    entry.mode,
		modTime: entry.modTime,
	}, nil
}

// Paths returns the sorted list of file paths currently stored.
// Test helper for asserting which files a component produced.
func (m *MemoryFileSystem) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
