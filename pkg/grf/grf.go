// Package grf reads GRF resource archives and exposes them as an fs.FS, so
// packed textures can be served the same way as files on disk.
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"time"

	"github.com/Faultbox/x3dscene/pkg/encoding"
)

const (
	magic      = "Master of Magic"
	headerSize = 46
	version    = 0x200

	// countBias is added to the entry count stored in the header.
	countBias = 7
)

// Entry flags.
const (
	FlagFile      = 0x01
	FlagEncrypted = 0x02
)

var (
	ErrBadMagic  = errors.New("grf: invalid magic")
	ErrVersion   = errors.New("grf: unsupported version")
	ErrCorrupt   = errors.New("grf: corrupt archive")
	ErrEncrypted = errors.New("grf: encrypted entries are not supported")
)

// Header is the fixed 46-byte archive header.
type Header struct {
	Magic         [15]byte
	EncryptionKey [15]byte
	TableOffset   uint32
	Seed          uint32
	FileCount     uint32
	Version       uint32
}

// Entry describes one stored file. Name is the decoded, normalized path.
type Entry struct {
	Name             string
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Archive is an opened GRF archive. It is safe for concurrent reads when
// the underlying ReaderAt is.
type Archive struct {
	r       io.ReaderAt
	closer  io.Closer
	header  Header
	entries map[string]*Entry
	names   []string
}

var (
	_ fs.FS         = (*Archive)(nil)
	_ fs.ReadFileFS = (*Archive)(nil)
	_ fs.StatFS     = (*Archive)(nil)
)

// Open opens the archive file at path.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	a, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.closer = f
	return a, nil
}

// NewReader reads the header and file table from r.
func NewReader(r io.ReaderAt) (*Archive, error) {
	a := &Archive{r: r, entries: make(map[string]*Entry)}
	if err := a.readHeader(); err != nil {
		return nil, err
	}
	if err := a.readTable(); err != nil {
		return nil, err
	}
	return a, nil
}

// Close releases the file opened by Open.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *Archive) readHeader() error {
	sr := io.NewSectionReader(a.r, 0, headerSize)
	if err := binary.Read(sr, binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if string(a.header.Magic[:]) != magic {
		return ErrBadMagic
	}
	if a.header.Version != version {
		return fmt.Errorf("%w: 0x%x", ErrVersion, a.header.Version)
	}
	return nil
}

func (a *Archive) readTable() error {
	base := int64(headerSize) + int64(a.header.TableOffset)
	var sizes [8]byte
	if _, err := a.r.ReadAt(sizes[:], base); err != nil {
		return fmt.Errorf("%w: table header: %v", ErrCorrupt, err)
	}
	packed := binary.LittleEndian.Uint32(sizes[0:])
	unpacked := binary.LittleEndian.Uint32(sizes[4:])

	zr, err := zlib.NewReader(io.NewSectionReader(a.r, base+8, int64(packed)))
	if err != nil {
		return fmt.Errorf("%w: table: %v", ErrCorrupt, err)
	}
	defer zr.Close()
	table := make([]byte, unpacked)
	if _, err := io.ReadFull(zr, table); err != nil {
		return fmt.Errorf("%w: table: %v", ErrCorrupt, err)
	}

	if a.header.FileCount < a.header.Seed+countBias {
		return fmt.Errorf("%w: file count %d", ErrCorrupt, a.header.FileCount)
	}
	count := a.header.FileCount - a.header.Seed - countBias

	off := 0
	for i := uint32(0); i < count; i++ {
		raw := encoding.CString(table[off:])
		if len(raw) == len(table[off:]) {
			return fmt.Errorf("%w: unterminated name in entry %d", ErrCorrupt, i)
		}
		off += len(raw) + 1
		if off+17 > len(table) {
			return fmt.Errorf("%w: truncated entry %d", ErrCorrupt, i)
		}
		e := &Entry{
			Name:             encoding.NormalizePath(encoding.EUCKRToUTF8(raw)),
			CompressedSize:   binary.LittleEndian.Uint32(table[off:]),
			AlignedSize:      binary.LittleEndian.Uint32(table[off+4:]),
			UncompressedSize: binary.LittleEndian.Uint32(table[off+8:]),
			Flags:            table[off+12],
			Offset:           binary.LittleEndian.Uint32(table[off+13:]),
		}
		off += 17

		if e.Flags&FlagFile == 0 {
			continue
		}
		if _, dup := a.entries[e.Name]; !dup {
			a.names = append(a.names, e.Name)
		}
		a.entries[e.Name] = e
	}
	slices.Sort(a.names)
	return nil
}

// Len returns the number of file entries.
func (a *Archive) Len() int {
	return len(a.names)
}

// List returns the normalized entry names in sorted order.
func (a *Archive) List() []string {
	return slices.Clone(a.names)
}

// Entry looks up an entry. Lookups ignore case and accept backslashes.
func (a *Archive) Entry(name string) (*Entry, bool) {
	e, ok := a.entries[encoding.NormalizePath(name)]
	return e, ok
}

// Contains reports whether the archive holds name.
func (a *Archive) Contains(name string) bool {
	_, ok := a.Entry(name)
	return ok
}

// ReadFile returns the uncompressed contents of name.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	e, ok := a.Entry(name)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	data, err := a.read(e)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return data, nil
}

func (a *Archive) read(e *Entry) ([]byte, error) {
	if e.Flags&FlagEncrypted != 0 {
		return nil, ErrEncrypted
	}
	sr := io.NewSectionReader(a.r, headerSize+int64(e.Offset), int64(e.CompressedSize))
	if e.CompressedSize == e.UncompressedSize {
		data := make([]byte, e.UncompressedSize)
		if _, err := io.ReadFull(sr, data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		return data, nil
	}

	zr, err := zlib.NewReader(sr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()
	data := make([]byte, e.UncompressedSize)
	if _, err := io.ReadFull(zr, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return data, nil
}

// Stat returns file info for name without reading it.
func (a *Archive) Stat(name string) (fs.FileInfo, error) {
	e, ok := a.Entry(name)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{e}, nil
}

// Open implements fs.FS. Only file entries can be opened.
func (a *Archive) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	e, ok := a.Entry(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	data, err := a.read(e)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &file{Reader: bytes.NewReader(data), info: fileInfo{e}}, nil
}

type file struct {
	*bytes.Reader
	info fileInfo
}

func (f *file) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *file) Close() error               { return nil }

type fileInfo struct {
	e *Entry
}

func (fi fileInfo) Name() string       { return path.Base(fi.e.Name) }
func (fi fileInfo) Size() int64        { return int64(fi.e.UncompressedSize) }
func (fi fileInfo) Mode() fs.FileMode  { return 0o444 }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return false }
func (fi fileInfo) Sys() any           { return fi.e }
