package kv

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// File keeps all keys in a single JSON object on disk. Every Get reads the
// file, so the disk copy is always the source of truth.
type File struct {
	mu       sync.Mutex
	filePath string
}

// NewFile returns a File store at filePath. The file is created on first write.
func NewFile(filePath string) *File {
	return &File{filePath: filePath}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.filePath
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.writeAtomic(values)
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.writeAtomic(values)
}

// read loads the whole file. A missing file is an empty store.
// Caller must hold f.mu.
func (f *File) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, unavailable("read", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, unavailable("decode", err)
	}
	return values, nil
}

// writeAtomic writes to a temp file then renames it over filePath.
// Caller must hold f.mu.
func (f *File) writeAtomic(values map[string]string) error {
	dir := filepath.Dir(f.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return unavailable("mkdir", err)
	}

	tmp := f.filePath + ".tmp"
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return unavailable("encode", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return unavailable("write", err)
	}
	if err := os.Rename(tmp, f.filePath); err != nil {
		return unavailable("rename", err)
	}
	return nil
}
