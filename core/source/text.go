package source

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z": {}, ".bin": {}, ".bmp": {}, ".doc": {}, ".docx": {}, ".exe": {},
	".gif": {}, ".gz": {}, ".jpeg": {}, ".jpg": {}, ".mp3": {}, ".mp4": {},
	".pdf": {}, ".png": {}, ".ppt": {}, ".pptx": {}, ".tar": {}, ".webp": {},
	".xls": {}, ".xlsx": {}, ".zip": {},
}

// IsText reports whether content looks like text. A known binary extension
// on path short-circuits the sniff.
func IsText(path string, content []byte) bool {
	if _, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return false
	}
	if len(content) == 0 {
		return true
	}

	s := sample(content)
	if detectUnicodeEncoding(s) != encodingUnknown {
		return true
	}
	if bytes.IndexByte(s, 0x00) != -1 {
		return false
	}
	if utf8.Valid(s) {
		return true
	}

	nonPrintable := 0
	for _, b := range s {
		if b < 0x20 && b != '\n' && b != '\r' && b != '\t' && b != '\f' {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(s) < nonPrintableThresholdPercent
}

func detectUnicodeEncoding(s []byte) unicodeEncoding {
	if len(s) >= 3 && s[0] == 0xEF && s[1] == 0xBB && s[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(s) >= 2 {
		switch {
		case s[0] == 0xFF && s[1] == 0xFE:
			return encodingUTF16LE
		case s[0] == 0xFE && s[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

// DecodeText converts BOM-marked content to a UTF-8 string without the BOM.
func DecodeText(content []byte) string {
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:])
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
