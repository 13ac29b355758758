package grf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func build(t *testing.T, w *Writer) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo reported %d bytes, wrote %d", n, buf.Len())
	}
	return buf.Bytes()
}

func testArchive(t *testing.T) *Archive {
	t.Helper()
	w := NewWriter()
	w.Add("data/texture/wood.png", bytes.Repeat([]byte("wood"), 64))
	w.Add(`Data\Texture\Stone.TGA`, []byte("st"))
	w.Add("data/texture/유저인터페이스/버튼.bmp", []byte("BM button"))
	w.Add("empty.txt", nil)
	a, err := NewReader(bytes.NewReader(build(t, w)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return a
}

func TestList(t *testing.T) {
	a := testArchive(t)
	want := []string{
		"data/texture/stone.tga",
		"data/texture/wood.png",
		"data/texture/유저인터페이스/버튼.bmp",
		"empty.txt",
	}
	got := a.List()
	if len(got) != len(want) || a.Len() != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	a := testArchive(t)
	tests := []struct {
		name string
		want []byte
	}{
		{"data/texture/wood.png", bytes.Repeat([]byte("wood"), 64)},
		{"DATA/TEXTURE/WOOD.PNG", bytes.Repeat([]byte("wood"), 64)},
		{`data\texture\stone.tga`, []byte("st")},
		{"data/texture/유저인터페이스/버튼.bmp", []byte("BM button")},
		{"empty.txt", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := a.ReadFile(tt.name)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !bytes.Equal(data, tt.want) {
				t.Errorf("got %q, want %q", data, tt.want)
			}
		})
	}
}

func TestCompressionChoice(t *testing.T) {
	a := testArchive(t)
	wood, _ := a.Entry("data/texture/wood.png")
	if wood.CompressedSize >= wood.UncompressedSize {
		t.Errorf("repetitive data not compressed: %d >= %d", wood.CompressedSize, wood.UncompressedSize)
	}
	if wood.AlignedSize%8 != 0 || wood.AlignedSize < wood.CompressedSize {
		t.Errorf("bad aligned size %d for %d", wood.AlignedSize, wood.CompressedSize)
	}
	stone, _ := a.Entry("data/texture/stone.tga")
	if stone.CompressedSize != stone.UncompressedSize {
		t.Errorf("short data should be stored: %d != %d", stone.CompressedSize, stone.UncompressedSize)
	}
}

func TestMissing(t *testing.T) {
	a := testArchive(t)
	if a.Contains("nope.png") {
		t.Error("Contains reported a missing file")
	}
	if _, err := a.ReadFile("nope.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
	if _, err := a.Open("nope.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open error = %v, want fs.ErrNotExist", err)
	}
	if _, err := a.Stat("nope.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat error = %v, want fs.ErrNotExist", err)
	}
	if _, err := a.Open("../escape.png"); !errors.Is(err, fs.ErrInvalid) {
		t.Errorf("Open error = %v, want fs.ErrInvalid", err)
	}
}

func TestFS(t *testing.T) {
	a := testArchive(t)

	data, err := fs.ReadFile(a, "data/texture/wood.png")
	if err != nil || len(data) != 256 {
		t.Fatalf("fs.ReadFile = %d bytes, %v", len(data), err)
	}

	f, err := a.Open("data/texture/stone.tga")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Name() != "stone.tga" || info.Size() != 2 || info.IsDir() {
		t.Errorf("unexpected info: %s %d %v", info.Name(), info.Size(), info.IsDir())
	}
	body, err := io.ReadAll(f)
	if err != nil || string(body) != "st" {
		t.Errorf("ReadAll = %q, %v", body, err)
	}

	info, err = fs.Stat(a, "data/texture/wood.png")
	if err != nil {
		t.Fatalf("fs.Stat: %v", err)
	}
	if e, ok := info.Sys().(*Entry); !ok || e.Name != "data/texture/wood.png" {
		t.Errorf("Sys = %#v", info.Sys())
	}
}

func TestShadowedName(t *testing.T) {
	w := NewWriter()
	w.Add("a.txt", []byte("old"))
	w.Add("A.TXT", []byte("new"))
	a, err := NewReader(bytes.NewReader(build(t, w)))
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d, want 1", a.Len())
	}
	data, _ := a.ReadFile("a.txt")
	if string(data) != "new" {
		t.Errorf("got %q, want the later entry", data)
	}
}

func TestEncryptedEntry(t *testing.T) {
	w := NewWriter()
	w.files = append(w.files, pending{name: "secret.bin", data: []byte("x"), flags: FlagFile | FlagEncrypted})
	a, err := NewReader(bytes.NewReader(build(t, w)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.ReadFile("secret.bin"); !errors.Is(err, ErrEncrypted) {
		t.Errorf("error = %v, want ErrEncrypted", err)
	}
}

func TestDirectoryEntriesSkipped(t *testing.T) {
	w := NewWriter()
	w.files = append(w.files, pending{name: "data/texture", flags: 0})
	w.Add("data/texture/a.png", []byte("a"))
	a, err := NewReader(bytes.NewReader(build(t, w)))
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 1 || a.Contains("data/texture") {
		t.Errorf("List = %v", a.List())
	}
}

func TestInvalidHeaders(t *testing.T) {
	good := build(t, NewWriter())

	badMagic := bytes.Clone(good)
	copy(badMagic, "Master of Magix")
	if _, err := NewReader(bytes.NewReader(badMagic)); !errors.Is(err, ErrBadMagic) {
		t.Errorf("bad magic: %v", err)
	}

	badVersion := bytes.Clone(good)
	binary.LittleEndian.PutUint32(badVersion[42:], 0x103)
	if _, err := NewReader(bytes.NewReader(badVersion)); !errors.Is(err, ErrVersion) {
		t.Errorf("bad version: %v", err)
	}

	if _, err := NewReader(bytes.NewReader(good[:20])); !errors.Is(err, ErrCorrupt) {
		t.Errorf("short header: %v", err)
	}

	badCount := bytes.Clone(good)
	binary.LittleEndian.PutUint32(badCount[38:], 3)
	if _, err := NewReader(bytes.NewReader(badCount)); !errors.Is(err, ErrCorrupt) {
		t.Errorf("bad count: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	w := NewWriter()
	w.Add("textures/wood.png", []byte("png"))
	path := filepath.Join(t.TempDir(), "pack.grf")
	if err := os.WriteFile(path, build(t, w), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()
	if !a.Contains("textures/wood.png") {
		t.Error("missing entry")
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.grf")); err == nil {
		t.Error("expected error for missing archive")
	}

	notGRF := filepath.Join(t.TempDir(), "plain.grf")
	os.WriteFile(notGRF, []byte(strings.Repeat("x", 64)), 0o644)
	if _, err := Open(notGRF); !errors.Is(err, ErrBadMagic) {
		t.Errorf("error = %v, want ErrBadMagic", err)
	}
}
