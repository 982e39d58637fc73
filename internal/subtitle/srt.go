package subtitle

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SubRip format
type SRTCodec struct{}

var srtTimingRegex = regexp.MustCompile(
	`^\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})`,
)

const (
	srtExpectIndex = iota
	srtExpectTiming
	srtInText
)

func (SRTCodec) Decode(raw string) (*Document, error) {
	var nodes []Node
	var current *Node
	var textLines []string

	flush := func() {
		current.Text = strings.Join(textLines, "\n")
		nodes = append(nodes, *current)
		current = nil
		textLines = nil
	}

	scanner := newLineScanner(raw)
	state := srtExpectIndex
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		blank := strings.TrimSpace(line) == ""

		switch state {
		case srtExpectIndex:
			if blank {
				continue
			}
			if matches := srtTimingRegex.FindStringSubmatch(line); matches != nil {
				node, err := srtNodeFromTiming(matches, lineNum)
				if err != nil {
					return nil, err
				}
				current = node
				state = srtInText
				continue
			}
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err != nil {
				// text after a blank line inside a cue belongs to that cue
				if n := len(nodes); n > 0 {
					last := nodes[n-1]
					nodes = nodes[:n-1]
					current = &last
					textLines = nil
					if last.Text != "" {
						textLines = strings.Split(last.Text, "\n")
					}
					textLines = append(textLines, line)
					state = srtInText
					continue
				}
				return nil, parseErrorf(
					FormatSRT,
					lineNum,
					"expected cue number or timing, got %q",
					line,
				)
			}
			state = srtExpectTiming

		case srtExpectTiming:
			matches := srtTimingRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, parseErrorf(
					FormatSRT,
					lineNum,
					"invalid timing line %q",
					line,
				)
			}
			node, err := srtNodeFromTiming(matches, lineNum)
			if err != nil {
				return nil, err
			}
			current = node
			state = srtInText

		case srtInText:
			if blank {
				flush()
				state = srtExpectIndex
				continue
			}
			textLines = append(textLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Format: FormatSRT, Err: err}
	}

	switch state {
	case srtInText:
		flush()
	case srtExpectTiming:
		return nil, parseErrorf(
			FormatSRT,
			lineNum,
			"unexpected end of input after cue number",
		)
	}

	renumber(nodes)
	return &Document{Format: FormatSRT, Nodes: nodes}, nil
}

func srtNodeFromTiming(matches []string, lineNum int) (*Node, error) {
	start, err := parseClock(matches[1], matches[2], matches[3], matches[4])
	if err != nil {
		return nil, parseErrorf(
			FormatSRT,
			lineNum,
			"invalid start timestamp: %w",
			err,
		)
	}
	end, err := parseClock(matches[5], matches[6], matches[7], matches[8])
	if err != nil {
		return nil, parseErrorf(
			FormatSRT,
			lineNum,
			"invalid end timestamp: %w",
			err,
		)
	}
	return &Node{Start: start, End: end}, nil
}

func (SRTCodec) Encode(doc *Document) (string, error) {
	if err := validateTiming(doc, FormatSRT); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, node := range doc.Nodes {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(node.Start),
			formatSRTTime(node.End)))

		if node.Text != "" {
			sb.WriteString(node.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// parses h:mm:ss plus a fraction of one to three digits
func parseClock(
	hours, minutes, seconds, fraction string,
) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	if m > 59 || s > 59 {
		return 0, fmt.Errorf("%s:%s:%s out of range", hours, minutes, seconds)
	}

	for len(fraction) < 3 {
		fraction += "0"
	}
	ms, err := strconv.Atoi(fraction)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

func newLineScanner(raw string) *bufio.Scanner {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}
