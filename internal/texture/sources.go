package texture

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/Faultbox/x3dscene/pkg/grf"
)

// Sources is an ordered set of file systems that texture references are
// looked up in. The most recently added source is searched first.
type Sources struct {
	mu      sync.RWMutex
	entries []source
}

type source struct {
	name   string
	fsys   fs.FS
	closer io.Closer
}

// NewSources returns an empty source set.
func NewSources() *Sources {
	return &Sources{}
}

// Add registers fsys under a display name.
func (s *Sources) Add(name string, fsys fs.FS) {
	s.mu.Lock()
	s.entries = append(s.entries, source{name: name, fsys: fsys})
	s.mu.Unlock()
}

// AddDir registers a directory tree.
func (s *Sources) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("texture root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("texture root %s: not a directory", dir)
	}
	s.Add(dir, os.DirFS(dir))
	return nil
}

// AddArchive opens a GRF archive and registers it. The archive is closed
// by Close.
func (s *Sources) AddArchive(file string) error {
	a, err := grf.Open(file)
	if err != nil {
		return fmt.Errorf("texture pack: %w", err)
	}
	s.mu.Lock()
	s.entries = append(s.entries, source{name: file, fsys: a, closer: a})
	s.mu.Unlock()
	return nil
}

// Len returns the number of registered sources.
func (s *Sources) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ReadFile returns the contents of ref from the first source holding it and
// that source's name.
func (s *Sources) ReadFile(ref string) ([]byte, string, error) {
	name, ok := cleanRef(ref)
	if !ok {
		return nil, "", &fs.PathError{Op: "open", Path: ref, Err: fs.ErrInvalid}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		data, err := fs.ReadFile(e.fsys, name)
		if err == nil {
			return data, e.name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, e.name, err
		}
	}
	return nil, "", &fs.PathError{Op: "open", Path: ref, Err: fs.ErrNotExist}
}

// Close closes every archive and empties the set.
func (s *Sources) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	for _, e := range s.entries {
		if e.closer != nil {
			err = multierr.Append(err, e.closer.Close())
		}
	}
	s.entries = nil
	return err
}

// cleanRef turns a texture reference into an fs.FS path. References that
// leave the source root or name a remote resource are rejected.
func cleanRef(ref string) (string, bool) {
	if strings.Contains(ref, "://") {
		return "", false
	}
	p := path.Clean(strings.ReplaceAll(ref, "\\", "/"))
	p = strings.TrimLeft(p, "/")
	if !fs.ValidPath(p) || p == "." {
		return "", false
	}
	return p, true
}
