// Package encoding converts the EUC-KR entry names found in packed
// resource archives.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// EUCKRToUTF8 decodes EUC-KR bytes. Input that is already valid ASCII is
// returned unchanged; undecodable input is returned as-is.
func EUCKRToUTF8(data []byte) string {
	if isASCII(data) {
		return string(data)
	}
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil || !utf8.Valid(out) {
		return string(data)
	}
	return string(out)
}

// UTF8ToEUCKR encodes s as EUC-KR. Characters outside the code page make
// the whole string fall back to its UTF-8 bytes.
func UTF8ToEUCKR(s string) []byte {
	if isASCII([]byte(s)) {
		return []byte(s)
	}
	out, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// NormalizePath maps an archive or texture path to its lookup key: forward
// slashes, lower case, no leading "./" or "/".
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimLeft(path, "/")
	return strings.ToLower(path)
}

// CString returns the bytes of data up to the first NUL.
func CString(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
