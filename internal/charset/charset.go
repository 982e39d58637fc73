package charset

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

const UTF8 = "UTF-8"

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ToUTF8 returns data as UTF-8 along with the charset it was decoded from.
// Valid UTF-8 input is returned unchanged apart from a leading BOM.
func ToUTF8(data []byte) ([]byte, string, error) {
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), UTF8, nil
	}

	charset, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return nil, "", fmt.Errorf("detect charset: %w", err)
	}
	if charset.Charset == UTF8 {
		return nil, "", fmt.Errorf("input is not valid %s", UTF8)
	}

	encoding, err := ianaindex.MIB.Encoding(charset.Charset)
	if err != nil {
		return nil, "", fmt.Errorf("unsupported charset %s: %w", charset.Charset, err)
	}
	if encoding == nil {
		return nil, "", fmt.Errorf("unsupported charset %s", charset.Charset)
	}

	transformed, err := io.ReadAll(
		transform.NewReader(bytes.NewReader(data), encoding.NewDecoder()),
	)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", charset.Charset, err)
	}

	return bytes.TrimPrefix(transformed, utf8BOM), charset.Charset, nil
}
