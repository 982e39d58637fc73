package filter

import (
	"fmt"
	"strings"

	"github.com/mgpai22/subclean/internal/subtitle"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ordered lowercase phrases marking a node as advertising
type Blacklist []string

// single blacklist hit
type Match struct {
	NodeIndex int
	Entry     string
}

func (m Match) String() string {
	return fmt.Sprintf("Advertising found in node %d (%s)", m.NodeIndex, m.Entry)
}

// outcome of one cleaning pass
type Result struct {
	Document *subtitle.Document
	Matches  []Match
}

// Apply blanks the text of every node that contains a blacklist entry,
// case-insensitively. Nodes are never added, removed or reordered; a node
// that already has no text is skipped. Matches are reported in node order.
func Apply(doc *subtitle.Document, blacklist Blacklist) Result {
	result := Result{Document: doc}
	if len(blacklist) == 0 {
		return result
	}

	caser := cases.Lower(language.Und)

	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		if node.Text == "" {
			continue
		}

		text := caser.String(node.Text)
		for _, entry := range blacklist {
			if !strings.Contains(text, entry) {
				continue
			}
			node.Text = ""
			result.Matches = append(result.Matches, Match{
				NodeIndex: i,
				Entry:     entry,
			})
			break
		}
	}

	return result
}
