package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

const (
	DefaultDirMode  os.FileMode = 0o755
	DefaultFileMode os.FileMode = 0o644

	// uploads are staged under this prefix next to their target and hidden from listings
	tempPrefix = ".webstore-upload-"
)

// Kind is the state a resource is in when a request starts handling it.
type Kind int

const (
	KindAbsent Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

type Options struct {
	DirMode  os.FileMode
	FileMode os.FileMode
}

// Store performs every filesystem operation against a single root directory.
type Store struct {
	fs       afero.Fs
	root     string
	dirMode  os.FileMode
	fileMode os.FileMode
}

// New makes root absolute and creates it when missing.
func New(fsys afero.Fs, root string, opts Options) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root must not be empty")
	}

	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if opts.DirMode == 0 {
		opts.DirMode = DefaultDirMode
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultFileMode
	}

	info, err := fsys.Stat(absoluteRoot)
	if err != nil && isNotExist(err) {
		if err := fsys.MkdirAll(absoluteRoot, opts.DirMode); err != nil {
			return nil, fmt.Errorf("failed to create storage root: %w", err)
		}
		info, err = fsys.Stat(absoluteRoot)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage root %s is not a directory", absoluteRoot)
	}

	return &Store{
		fs:       fsys,
		root:     absoluteRoot,
		dirMode:  opts.DirMode,
		fileMode: opts.FileMode,
	}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Stat reports the state of abs. A missing path is KindAbsent with a nil error.
func (s *Store) Stat(abs string) (Kind, os.FileInfo, error) {
	info, err := s.fs.Stat(abs)
	if err != nil {
		if isNotExist(err) {
			return KindAbsent, nil, nil
		}

		return KindAbsent, nil, err
	}

	if info.IsDir() {
		return KindDirectory, info, nil
	}

	return KindFile, info, nil
}

// Write replaces the full contents of the file at abs with body, creating any
// missing ancestors. The body is staged in a temporary file and renamed into
// place so concurrent writers never interleave. created reports whether the
// file was absent beforehand.
func (s *Store) Write(abs string, body io.Reader) (created bool, written int64, err error) {
	kind, _, err := s.Stat(abs)
	if err != nil {
		return false, 0, err
	}
	if kind == KindDirectory {
		return false, 0, ErrIsDirectory
	}

	dir := filepath.Dir(abs)
	if err := s.fs.MkdirAll(dir, s.dirMode); err != nil {
		return false, 0, fmt.Errorf("failed to create parent directories: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, tempPrefix+"*")
	if err != nil {
		return false, 0, err
	}
	tmpName := tmp.Name()

	written, err = io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = s.fs.Chmod(tmpName, s.fileMode)
	}
	if err == nil {
		err = s.fs.Rename(tmpName, abs)
	}
	if err != nil {
		_ = s.fs.Remove(tmpName)
		return false, 0, err
	}

	return kind == KindAbsent, written, nil
}

// Open opens the regular file at abs for reading.
func (s *Store) Open(abs string) (afero.File, os.FileInfo, error) {
	kind, _, err := s.Stat(abs)
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case KindAbsent:
		return nil, nil, ErrNotFound
	case KindDirectory:
		return nil, nil, ErrIsDirectory
	}

	file, err := s.fs.Open(abs)
	if err != nil {
		if isNotExist(err) {
			return nil, nil, ErrNotFound
		}

		return nil, nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return file, info, nil
}

// Remove deletes the file or the whole directory tree at abs.
func (s *Store) Remove(abs string) error {
	if abs == s.root {
		return errors.New("refusing to remove storage root")
	}

	kind, _, err := s.Stat(abs)
	if err != nil {
		return err
	}

	switch kind {
	case KindAbsent:
		return ErrNotFound
	case KindDirectory:
		return s.fs.RemoveAll(abs)
	default:
		return s.fs.Remove(abs)
	}
}

func isTempName(name string) bool {
	return strings.HasPrefix(name, tempPrefix)
}

// isNotExist also covers paths that cannot exist at all: a file used as a
// directory, an over-long name, or a name with a NUL byte.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ENAMETOOLONG) ||
		errors.Is(err, syscall.EINVAL)
}
