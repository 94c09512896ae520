package scan

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeToUTF8 normalizes raw file bytes to UTF-8 so the marker regexes
// work on any source the scanner meets. Handles BOMs, valid UTF-8, and
// falls back to Windows-1252 for single-byte legacy files, which covers
// the encodings that show up in practice in code comments.
func decodeToUTF8(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	if len(data) >= 3 && bytes.Equal(data[:3], []byte{0xEF, 0xBB, 0xBF}) {
		return string(bytes.ToValidUTF8(data[3:], []byte("�")))
	}
	if len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFF, 0xFE}) {
		return decodeWith(data[2:], unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder())
	}
	if len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFE, 0xFF}) {
		return decodeWith(data[2:], unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder())
	}

	if utf8.Valid(data) {
		return string(data)
	}

	return decodeWith(data, charmap.Windows1252.NewDecoder())
}

func decodeWith(data []byte, decoder *encoding.Decoder) string {
	r := transform.NewReader(bytes.NewReader(data), decoder)
	out, err := io.ReadAll(r)
	if err != nil {
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
	return string(bytes.ToValidUTF8(out, []byte("�")))
}

// isBinary reports whether a sample looks like binary content: NUL bytes
// are the standard tell.
func isBinary(data []byte) bool {
	sample := data
	if len(sample) > 8000 {
		sample = sample[:8000]
	}
	return bytes.IndexByte(sample, 0) >= 0
}
