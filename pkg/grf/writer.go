package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"strings"

	"github.com/Faultbox/x3dscene/pkg/encoding"
)

// Writer assembles an archive in memory. Names are stored EUC-KR encoded
// with backslash separators.
type Writer struct {
	files []pending
}

type pending struct {
	name  string
	data  []byte
	flags uint8
}

// NewWriter returns an empty archive writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Add queues a file. Later additions of the same name shadow earlier ones
// when the archive is read back.
func (w *Writer) Add(name string, data []byte) {
	w.files = append(w.files, pending{name: name, data: data, flags: FlagFile})
}

// WriteTo writes the complete archive to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	var body, table bytes.Buffer
	for _, f := range w.files {
		stored, err := deflate(f.data)
		if err != nil {
			return 0, err
		}
		aligned := (len(stored) + 7) &^ 7
		offset := body.Len()
		body.Write(stored)
		body.Write(make([]byte, aligned-len(stored)))

		table.Write(encoding.UTF8ToEUCKR(strings.ReplaceAll(f.name, "/", "\\")))
		table.WriteByte(0)
		var rec [17]byte
		binary.LittleEndian.PutUint32(rec[0:], uint32(len(stored)))
		binary.LittleEndian.PutUint32(rec[4:], uint32(aligned))
		binary.LittleEndian.PutUint32(rec[8:], uint32(len(f.data)))
		rec[12] = f.flags
		binary.LittleEndian.PutUint32(rec[13:], uint32(offset))
		table.Write(rec[:])
	}

	packedTable, err := compress(table.Bytes())
	if err != nil {
		return 0, err
	}

	h := Header{
		TableOffset: uint32(body.Len()),
		FileCount:   uint32(len(w.files)) + countBias,
		Version:     version,
	}
	copy(h.Magic[:], magic)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return 0, err
	}
	buf.Write(body.Bytes())
	binary.Write(&buf, binary.LittleEndian, uint32(len(packedTable)))
	binary.Write(&buf, binary.LittleEndian, uint32(table.Len()))
	buf.Write(packedTable)
	return buf.WriteTo(out)
}

// deflate compresses data unless that does not make it smaller. The reader
// treats equal stored and uncompressed sizes as an uncompressed entry.
func deflate(data []byte) ([]byte, error) {
	packed, err := compress(data)
	if err != nil {
		return nil, err
	}
	if len(packed) >= len(data) {
		return data, nil
	}
	return packed, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
