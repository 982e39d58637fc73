package subtitle

import (
	"path/filepath"
	"regexp"
	"strings"
)

// decodes and encodes one subtitle format
type Codec interface {
	Decoder
	Encoder
}

var srtSniffRegex = regexp.MustCompile(
	`\d{1,2}:\d{2}:\d{2}[.,]\d{2,3}\s*-->\s*\d{1,2}:\d{2}:\d{2}[.,]\d{2,3}`,
)

func NewCodec(format Format) (Codec, error) {
	switch format {
	case FormatSRT:
		return SRTCodec{}, nil
	case FormatVTT:
		return VTTCodec{}, nil
	case FormatASS, FormatSSA:
		return NewASSCodec(format), nil
	case FormatTTML:
		return TTMLCodec{}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(name string) (Format, bool) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "srt":
		return FormatSRT, true
	case "vtt", "webvtt":
		return FormatVTT, true
	case "ass":
		return FormatASS, true
	case "ssa":
		return FormatSSA, true
	case "ttml", "dfxp", "xml":
		return FormatTTML, true
	default:
		return "", false
	}
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) (Format, bool) {
	return ParseFormat(filepath.Ext(path))
}

// GuessFormat sniffs the format from document content, empty when unknown.
func GuessFormat(raw string) Format {
	raw = strings.TrimPrefix(raw, "\ufeff")
	lower := strings.ToLower(raw)

	if strings.Contains(lower, "[v4+ styles]") {
		return FormatASS
	}
	if strings.Contains(lower, "[v4 styles]") {
		return FormatSSA
	}
	if strings.HasPrefix(strings.TrimLeft(raw, " "), "WEBVTT") {
		return FormatVTT
	}
	if strings.Contains(lower, "<tt ") || strings.Contains(lower, "<tt>") {
		return FormatTTML
	}
	for _, l := range strings.Split(raw, "\n") {
		if srtSniffRegex.MatchString(l) {
			return FormatSRT
		}
	}
	return ""
}

// Decode parses raw document text. hint is a format name or file extension;
// when it is empty or unknown the format is sniffed from the content.
func Decode(raw string, hint string) (*Document, error) {
	format, ok := ParseFormat(hint)
	if !ok {
		format = GuessFormat(raw)
	}
	if format == "" {
		return nil, &ParseError{Format: Format(hint), Err: ErrUnknownFormat}
	}

	codec, err := NewCodec(format)
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return codec.Decode(raw)
}

// Encode serializes doc in the given format, named as in Decode.
func Encode(doc *Document, format string) (string, error) {
	f, ok := ParseFormat(format)
	if !ok {
		return "", &EncodeError{
			Format: Format(format),
			Node:   -1,
			Err:    ErrUnsupportedFormat,
		}
	}

	codec, err := NewCodec(f)
	if err != nil {
		return "", &EncodeError{Format: f, Node: -1, Err: err}
	}
	return codec.Encode(doc)
}
