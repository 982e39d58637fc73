package subtitle

import "time"

// represents single timed subtitle node
type Node struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string

	// WebVTT cue identifier and settings, empty for other formats
	ID       string
	Settings string
}

// represents complete decoded subtitle document
type Document struct {
	Format Format
	Nodes  []Node

	// format specific data needed to re-emit the document as it was read
	vtt  *vttLayout
	ass  *assLayout
	ttml *ttmlLayout
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
	FormatSSA  Format = "ssa"
	FormatTTML Format = "ttml"
)

// Len returns the number of nodes in the document.
func (d *Document) Len() int {
	return len(d.Nodes)
}

// Texts returns node texts in document order.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		texts[i] = n.Text
	}
	return texts
}

// interface for decoding raw subtitle text
type Decoder interface {
	Decode(raw string) (*Document, error)
}

// interface for encoding documents to subtitle text
type Encoder interface {
	Encode(doc *Document) (string, error)
}

func renumber(nodes []Node) {
	for i := range nodes {
		nodes[i].Index = i
	}
}
