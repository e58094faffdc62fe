// Package encoding normalizes uploaded files to UTF-8. Spreadsheet
// tools love to save CSV as Windows-1252 or UTF-16 with a BOM, so the
// importer runs every upload through NewUTF8Reader first.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how much of the file the detector looks at. CSV headers
// and the first rows are enough to decide.
const sniffLen = 2048

// NewUTF8Reader wraps r so that reads yield UTF-8 regardless of the
// source encoding. A UTF-8 BOM is stripped; UTF-16 BOMs select the
// matching decoder; otherwise valid UTF-8 passes through untouched and
// anything else goes through charset detection, defaulting to
// Windows-1252 when the detector is unsure.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	if bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
		return br, nil
	}

	if bytes.HasPrefix(head, []byte{0xFF, 0xFE}) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(head, []byte{0xFE, 0xFF}) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, guessDecoder(head)), nil
}

func guessDecoder(head []byte) transform.Transformer {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252.NewDecoder()
	}

	switch result.Charset {
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	case "ISO-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	}

	return charmap.Windows1252.NewDecoder()
}
