package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

// WebVTT format
type VTTCodec struct{}

// header and STYLE/REGION blocks re-emitted ahead of the cues
type vttLayout struct {
	header []string
	blocks [][]string
}

var vttTimingRegex = regexp.MustCompile(
	`^\s*(?:(\d+):)?(\d{2}):(\d{2})\.(\d{3})\s+-->\s+(?:(\d+):)?(\d{2}):(\d{2})\.(\d{3})(.*)$`,
)

const (
	vttInHeader = iota
	vttExpectCue
	vttExpectTiming
	vttInText
	vttInNote
	vttInBlock
)

func (VTTCodec) Decode(raw string) (*Document, error) {
	layout := &vttLayout{}
	var nodes []Node
	var current *Node
	var textLines []string
	var block []string
	var cueID string

	flush := func() {
		current.Text = strings.Join(textLines, "\n")
		nodes = append(nodes, *current)
		current = nil
		textLines = nil
	}

	startCue := func(matches []string, lineNum int) error {
		node, err := vttNodeFromTiming(matches, lineNum)
		if err != nil {
			return err
		}
		node.ID = cueID
		cueID = ""
		current = node
		return nil
	}

	scanner := newLineScanner(raw)
	state := vttInHeader
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if !strings.HasPrefix(line, "WEBVTT") {
				return nil, parseErrorf(
					FormatVTT,
					lineNum,
					"missing WEBVTT signature",
				)
			}
		}

		blank := strings.TrimSpace(line) == ""

		switch state {
		case vttInHeader:
			if blank {
				state = vttExpectCue
				continue
			}
			if vttTimingRegex.MatchString(line) {
				return nil, parseErrorf(
					FormatVTT,
					lineNum,
					"cue timing inside header",
				)
			}
			layout.header = append(layout.header, line)

		case vttExpectCue:
			if blank {
				continue
			}
			switch keyword := vttBlockKeyword(line); keyword {
			case "NOTE":
				state = vttInNote
				continue
			case "STYLE", "REGION":
				if len(nodes) > 0 {
					return nil, parseErrorf(
						FormatVTT,
						lineNum,
						"%s block after the first cue",
						keyword,
					)
				}
				block = []string{line}
				state = vttInBlock
				continue
			}
			if matches := vttTimingRegex.FindStringSubmatch(line); matches != nil {
				if err := startCue(matches, lineNum); err != nil {
					return nil, err
				}
				state = vttInText
				continue
			}
			cueID = line
			state = vttExpectTiming

		case vttExpectTiming:
			matches := vttTimingRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, parseErrorf(
					FormatVTT,
					lineNum,
					"invalid timing line %q",
					line,
				)
			}
			if err := startCue(matches, lineNum); err != nil {
				return nil, err
			}
			state = vttInText

		case vttInText:
			if blank {
				flush()
				state = vttExpectCue
				continue
			}
			// a timing line without a separating blank line starts a new cue
			if matches := vttTimingRegex.FindStringSubmatch(line); matches != nil {
				flush()
				if err := startCue(matches, lineNum); err != nil {
					return nil, err
				}
				continue
			}
			textLines = append(textLines, line)

		case vttInNote:
			if blank {
				state = vttExpectCue
			}

		case vttInBlock:
			if blank {
				layout.blocks = append(layout.blocks, block)
				block = nil
				state = vttExpectCue
				continue
			}
			block = append(block, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Format: FormatVTT, Err: err}
	}

	switch state {
	case vttInHeader:
		if lineNum == 0 {
			return nil, parseErrorf(FormatVTT, 0, "empty document")
		}
	case vttInText:
		flush()
	case vttInBlock:
		layout.blocks = append(layout.blocks, block)
	case vttExpectTiming:
		return nil, parseErrorf(
			FormatVTT,
			lineNum,
			"cue %q has no timing line",
			cueID,
		)
	}

	renumber(nodes)
	return &Document{Format: FormatVTT, Nodes: nodes, vtt: layout}, nil
}

func vttBlockKeyword(line string) string {
	for _, keyword := range []string{"NOTE", "STYLE", "REGION"} {
		if line == keyword ||
			strings.HasPrefix(line, keyword+" ") ||
			strings.HasPrefix(line, keyword+"\t") {
			return keyword
		}
	}
	return ""
}

func vttNodeFromTiming(matches []string, lineNum int) (*Node, error) {
	startHours := matches[1]
	if startHours == "" {
		startHours = "00"
	}
	endHours := matches[5]
	if endHours == "" {
		endHours = "00"
	}

	start, err := parseClock(startHours, matches[2], matches[3], matches[4])
	if err != nil {
		return nil, parseErrorf(
			FormatVTT,
			lineNum,
			"invalid start timestamp: %w",
			err,
		)
	}
	end, err := parseClock(endHours, matches[6], matches[7], matches[8])
	if err != nil {
		return nil, parseErrorf(
			FormatVTT,
			lineNum,
			"invalid end timestamp: %w",
			err,
		)
	}

	return &Node{
		Start:    start,
		End:      end,
		Settings: strings.TrimSpace(matches[9]),
	}, nil
}

func (VTTCodec) Encode(doc *Document) (string, error) {
	if err := validateTiming(doc, FormatVTT); err != nil {
		return "", err
	}

	var sb strings.Builder

	header := []string{"WEBVTT"}
	var blocks [][]string
	if doc.vtt != nil && len(doc.vtt.header) > 0 {
		header = doc.vtt.header
		blocks = doc.vtt.blocks
	}
	sb.WriteString(strings.Join(header, "\n"))
	sb.WriteString("\n\n")

	for _, block := range blocks {
		sb.WriteString(strings.Join(block, "\n"))
		sb.WriteString("\n\n")
	}

	for _, node := range doc.Nodes {
		if node.ID != "" {
			sb.WriteString(node.ID)
			sb.WriteString("\n")
		}

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s",
			formatVTTTime(node.Start),
			formatVTTTime(node.End)))
		if node.Settings != "" {
			sb.WriteString(" ")
			sb.WriteString(node.Settings)
		}
		sb.WriteString("\n")

		if node.Text != "" {
			sb.WriteString(node.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
