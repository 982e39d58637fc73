package subtitle

import (
	"bytes"
	"errors"
	"strings"

	"github.com/asticode/go-astisub"
)

// Timed Text Markup Language, read and written through astisub
type TTMLCodec struct{}

type ttmlLayout struct {
	subs  *astisub.Subtitles
	texts []string
}

func (TTMLCodec) Decode(raw string) (*Document, error) {
	subs, err := astisub.ReadFromTTML(strings.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Format: FormatTTML, Err: err}
	}

	nodes := make([]Node, len(subs.Items))
	texts := make([]string, len(subs.Items))
	for i, item := range subs.Items {
		texts[i] = ttmlItemText(item)
		nodes[i] = Node{
			Index: i,
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  texts[i],
		}
	}

	return &Document{
		Format: FormatTTML,
		Nodes:  nodes,
		ttml:   &ttmlLayout{subs: subs, texts: texts},
	}, nil
}

func ttmlItemText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		lines = append(lines, strings.TrimSpace(line.String()))
	}
	return strings.Join(lines, "\n")
}

func ttmlLines(text string) []astisub.Line {
	if text == "" {
		return nil
	}
	var lines []astisub.Line
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, astisub.Line{
			Items: []astisub.LineItem{{Text: l}},
		})
	}
	return lines
}

func (TTMLCodec) Encode(doc *Document) (string, error) {
	if err := validateTiming(doc, FormatTTML); err != nil {
		return "", err
	}
	if len(doc.Nodes) == 0 {
		return "", &EncodeError{
			Format: FormatTTML,
			Node:   -1,
			Err:    errors.New("no nodes to write"),
		}
	}

	var out astisub.Subtitles
	layout := doc.ttml
	if layout != nil && len(layout.subs.Items) == len(doc.Nodes) {
		// copy so the decoded document stays untouched
		out = *layout.subs
	} else {
		layout = nil
		out = *astisub.NewSubtitles()
	}
	out.Items = make([]*astisub.Item, len(doc.Nodes))

	for i, node := range doc.Nodes {
		var item astisub.Item
		if layout != nil {
			item = *layout.subs.Items[i]
		}
		item.StartAt = node.Start
		item.EndAt = node.End
		if layout == nil || node.Text != layout.texts[i] {
			item.Lines = ttmlLines(node.Text)
		}
		out.Items[i] = &item
	}

	var buf bytes.Buffer
	if err := out.WriteToTTML(&buf); err != nil {
		return "", &EncodeError{Format: FormatTTML, Node: -1, Err: err}
	}
	return buf.String(), nil
}
