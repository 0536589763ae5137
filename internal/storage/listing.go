package storage

import (
	"github.com/spf13/afero"
)

type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
)

// Entry is a directory listing item computed at listing time.
type Entry struct {
	Name string    `json:"name"`
	Type EntryType `json:"type"`
	Size int64     `json:"-"`
}

// List returns the immediate children of the directory at abs, sorted by name.
func (s *Store) List(abs string) ([]Entry, error) {
	kind, _, err := s.Stat(abs)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindAbsent:
		return nil, ErrNotFound
	case KindFile:
		return nil, ErrNotFound
	}

	infos, err := afero.ReadDir(s.fs, abs)
	if err != nil {
		if isNotExist(err) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if isTempName(info.Name()) {
			continue
		}

		if info.IsDir() {
			entries = append(entries, Entry{Name: info.Name(), Type: EntryDirectory})
			continue
		}

		entries = append(entries, Entry{
			Name: info.Name(),
			Type: EntryFile,
			Size: info.Size(),
		})
	}

	return entries, nil
}
