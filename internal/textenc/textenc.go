package textenc

import (
	"bytes"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// UTF8String decodes bytes of unknown encoding into a UTF-8 string. OCR
// engines answer in whatever encoding their runtime picked, so the receipt
// pipeline normalizes everything before pattern scanning.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Valid UTF-8 passes through unchanged
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func UTF8String(b []byte) string {
	if bytes.HasPrefix(b, bomUTF8) {
		return string(b[len(bomUTF8):])
	}

	if bytes.HasPrefix(b, bomUTF16LE) {
		return decode(b, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	}

	if bytes.HasPrefix(b, bomUTF16BE) {
		return decode(b, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
	}

	if utf8.Valid(b) {
		return string(b)
	}

	detector := chardet.NewTextDetector()

	result, err := detector.DetectBest(b)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return string(b)
		case "ISO-8859-1", "windows-1252":
			return decode(b, charmap.Windows1252.NewDecoder())
		case "ISO-8859-9":
			return decode(b, charmap.ISO8859_9.NewDecoder())
		}
	}

	return decode(b, charmap.Windows1252.NewDecoder())
}

func decode(b []byte, t transform.Transformer) string {
	decoded, _, err := transform.Bytes(t, b)
	if err != nil {
		// Keep whatever survived; the scan is tolerant of garbage.
		return string(b)
	}

	return string(decoded)
}
