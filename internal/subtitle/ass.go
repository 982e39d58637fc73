package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Advanced SubStation Alpha and SubStation Alpha formats
type ASSCodec struct {
	format Format

	// used only when encoding a document that was not decoded as ASS
	Title    string
	FontName string
	FontSize int
}

func NewASSCodec(format Format) *ASSCodec {
	return &ASSCodec{
		format:   format,
		Title:    "subclean",
		FontName: "Arial",
		FontSize: 20,
	}
}

// one physical line of the script; node is -1 for lines that are not dialogue
type assLine struct {
	raw  string
	node int
}

// parsed Dialogue line with all fields
type assDialogue struct {
	fields []string
	text   string
	start  time.Duration
	end    time.Duration
}

// every line of the script in file order plus the parsed dialogues
type assLayout struct {
	lines           []assLine
	formatColumns   []string
	textColumnIndex int
	startIndex      int
	endIndex        int
	dialogues       []assDialogue
}

func (c *ASSCodec) Decode(raw string) (*Document, error) {
	layout := &assLayout{
		textColumnIndex: -1,
		startIndex:      -1,
		endIndex:        -1,
	}
	var nodes []Node

	scanner := newLineScanner(raw)
	inEventsSection := false
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmedLine := strings.TrimSpace(line)
		layout.lines = append(layout.lines, assLine{raw: line, node: -1})

		if strings.HasPrefix(trimmedLine, "[") &&
			strings.HasSuffix(trimmedLine, "]") {
			sectionName := strings.ToLower(
				strings.TrimSuffix(strings.TrimPrefix(trimmedLine, "["), "]"),
			)
			inEventsSection = sectionName == "events"
			continue
		}

		if !inEventsSection {
			continue
		}

		if strings.HasPrefix(trimmedLine, "Format:") {
			if err := layout.parseFormatLine(trimmedLine); err != nil {
				return nil, &ParseError{Format: c.format, Line: lineNum, Err: err}
			}
			continue
		}

		if strings.HasPrefix(trimmedLine, "Dialogue:") {
			dialogue, err := layout.parseDialogueLine(trimmedLine)
			if err != nil {
				return nil, &ParseError{Format: c.format, Line: lineNum, Err: err}
			}
			layout.lines[len(layout.lines)-1].node = len(nodes)
			layout.dialogues = append(layout.dialogues, dialogue)
			nodes = append(nodes, Node{
				Start: dialogue.start,
				End:   dialogue.end,
				Text:  dialogue.text,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Format: c.format, Err: err}
	}

	if len(layout.formatColumns) == 0 {
		return nil, parseErrorf(
			c.format,
			0,
			"missing Format line in [Events] section",
		)
	}

	renumber(nodes)
	return &Document{Format: c.format, Nodes: nodes, ass: layout}, nil
}

func (l *assLayout) parseFormatLine(trimmedLine string) error {
	formatPart := strings.TrimPrefix(trimmedLine, "Format:")
	columns := strings.Split(formatPart, ",")
	for i, col := range columns {
		columns[i] = strings.TrimSpace(col)
	}
	l.formatColumns = columns
	l.textColumnIndex, l.startIndex, l.endIndex = -1, -1, -1

	for i, col := range columns {
		switch strings.ToLower(col) {
		case "text":
			l.textColumnIndex = i
		case "start":
			l.startIndex = i
		case "end":
			l.endIndex = i
		}
	}
	if l.textColumnIndex == -1 {
		return errors.New("missing Text column in Format line")
	}
	if l.startIndex == -1 || l.endIndex == -1 {
		return errors.New("missing Start or End column in Format line")
	}
	return nil
}

func (l *assLayout) parseDialogueLine(trimmedLine string) (assDialogue, error) {
	var dialogue assDialogue

	numColumns := len(l.formatColumns)
	if numColumns == 0 {
		return dialogue, errors.New("dialogue line before Format line")
	}

	content := strings.TrimSpace(strings.TrimPrefix(trimmedLine, "Dialogue:"))
	parts := splitASSFields(content, numColumns)
	if len(parts) < numColumns {
		return dialogue, fmt.Errorf(
			"expected %d fields, got %d",
			numColumns,
			len(parts),
		)
	}

	start, err := parseASSTimestamp(parts[l.startIndex])
	if err != nil {
		return dialogue, fmt.Errorf("invalid start timestamp: %w", err)
	}
	end, err := parseASSTimestamp(parts[l.endIndex])
	if err != nil {
		return dialogue, fmt.Errorf("invalid end timestamp: %w", err)
	}

	dialogue.fields = parts
	dialogue.start = start
	dialogue.end = end
	dialogue.text = unescapeASSText(parts[l.textColumnIndex])

	return dialogue, nil
}

func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}

	parts := make([]string, 0, numFields)
	remaining := content

	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			remaining = ""
			return parts
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}

	parts = append(parts, remaining)

	return parts
}

func parseASSTimestamp(ts string) (time.Duration, error) {
	ts = strings.TrimSpace(ts)
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	// split seconds and centiseconds
	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 || len(parts[1]) != 2 || len(secParts[0]) != 2 ||
		len(secParts[1]) == 0 || len(secParts[1]) > 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	// centiseconds are right-padded to milliseconds
	d, err := parseClock(parts[0], parts[1], secParts[0], secParts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	return d, nil
}

func unescapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\\N", "\n")
	return strings.ReplaceAll(text, "\\n", "\n")
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}

func (c *ASSCodec) Encode(doc *Document) (string, error) {
	if err := validateTiming(doc, c.format); err != nil {
		return "", err
	}

	layout := doc.ass
	if layout == nil || len(layout.dialogues) != len(doc.Nodes) {
		return c.encodeFresh(doc), nil
	}

	var sb strings.Builder
	writer := bufio.NewWriter(&sb)

	for _, line := range layout.lines {
		out := line.raw
		if line.node >= 0 {
			out = layout.buildDialogueLine(
				layout.dialogues[line.node],
				doc.Nodes[line.node],
				line.raw,
			)
		}
		if _, err := writer.WriteString(out + "\n"); err != nil {
			return "", &EncodeError{Format: c.format, Node: -1, Err: err}
		}
	}

	if err := writer.Flush(); err != nil {
		return "", &EncodeError{Format: c.format, Node: -1, Err: err}
	}
	return sb.String(), nil
}

// rewrites a dialogue line only when its node changed
func (l *assLayout) buildDialogueLine(d assDialogue, node Node, raw string) string {
	if node.Text == d.text && node.Start == d.start && node.End == d.end {
		return raw
	}

	allFields := make([]string, len(d.fields))
	copy(allFields, d.fields)

	if node.Start != d.start {
		allFields[l.startIndex] = formatASSTime(node.Start)
	}
	if node.End != d.end {
		allFields[l.endIndex] = formatASSTime(node.End)
	}
	if node.Text != d.text {
		allFields[l.textColumnIndex] = escapeASSText(node.Text)
	}

	return "Dialogue: " + strings.Join(allFields, ",")
}

// writes a minimal script for documents decoded from another format
func (c *ASSCodec) encodeFresh(doc *Document) string {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", c.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		c.FontName, c.FontSize))

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, node := range doc.Nodes {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(node.Start),
			formatASSTime(node.End),
			escapeASSText(node.Text)))
	}

	return sb.String()
}
