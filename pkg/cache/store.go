package cache

import (
	"encoding/gob"
	"errors"
	"io/fs"
	"os"
)

// Store is the persistence port for the weather cache. Entries are
// loaded wholesale at the start of a run and rewritten wholesale at the
// end, never per entry.
type Store interface {
	Load() (map[string][]byte, error)
	Save(entries map[string][]byte) error
}

// FileStore keeps the cache as a single binary blob on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (map[string][]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string][]byte{}, nil
		}
		return nil, err
	}
	defer f.Close()
	entries := map[string][]byte{}
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FileStore) Save(entries map[string][]byte) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(entries)
}

// MemoryStore is the test substitute for FileStore.
type MemoryStore struct {
	Entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Entries: map[string][]byte{}}
}

func (s *MemoryStore) Load() (map[string][]byte, error) {
	out := make(map[string][]byte, len(s.Entries))
	for k, v := range s.Entries {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Save(entries map[string][]byte) error {
	s.Entries = make(map[string][]byte, len(entries))
	for k, v := range entries {
		s.Entries[k] = v
	}
	return nil
}
