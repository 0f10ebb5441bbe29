package source

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeUTF16 converts UTF-16 content with a leading BOM into UTF-8.
// Content without a UTF-16 BOM is returned unchanged.
func decodeUTF16(content []byte) ([]byte, bool, error) {
	if len(content) < 2 {
		return content, false, nil
	}
	var endian unicode.Endianness
	switch {
	case content[0] == 0xFF && content[1] == 0xFE:
		endian = unicode.LittleEndian
	case content[0] == 0xFE && content[1] == 0xFF:
		endian = unicode.BigEndian
	default:
		return content, false, nil
	}
	dec := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, content)
	if err != nil {
		return nil, false, fmt.Errorf("decode utf-16: %w", err)
	}
	return out, true, nil
}

// prepareContent applies the load-time transformations: UTF-16 decoding and UTF-8 BOM removal.
// Line terminators are left alone.
func prepareContent(raw []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	content, decoded, err := decodeUTF16(raw)
	if err != nil {
		return nil, 0, err
	}
	if decoded {
		flags |= FileDecodedUTF16
	}
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	return content, flags, nil
}
