package profile

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"

	"github.com/birkenlabs/birkentempprofiler/pkg/model"
)

// Store is the persistence port for the assembled profile document.
type Store interface {
	Load() (*model.Profile, error)
	Save(p *model.Profile) error
	Exists() bool
}

// FileStore keeps the profile as one JSON document on disk, used for
// run resumption.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

func (s *FileStore) Load() (*model.Profile, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := oj.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile document: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *FileStore) Save(p *model.Profile) error {
	data, err := oj.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// MemoryStore is the test substitute for FileStore.
type MemoryStore struct {
	Profile *model.Profile
}

func (s *MemoryStore) Exists() bool { return s.Profile != nil }

func (s *MemoryStore) Load() (*model.Profile, error) {
	if s.Profile == nil {
		return nil, os.ErrNotExist
	}
	return s.Profile, nil
}

func (s *MemoryStore) Save(p *model.Profile) error {
	s.Profile = p
	return nil
}
