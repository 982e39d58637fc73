package filter

import (
	"testing"
	"time"

	"github.com/mgpai22/subclean/internal/subtitle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocument(texts ...string) *subtitle.Document {
	nodes := make([]subtitle.Node, len(texts))
	for i, text := range texts {
		nodes[i] = subtitle.Node{
			Index: i,
			Start: time.Duration(i) * 2 * time.Second,
			End:   time.Duration(i)*2*time.Second + time.Second,
			Text:  text,
		}
	}
	return &subtitle.Document{Format: subtitle.FormatSRT, Nodes: nodes}
}

func TestApplyBlanksMatchingNode(t *testing.T) {
	doc := newDocument("Hello there", "Buy now at CheapDeals", "Goodbye")

	result := Apply(doc, Blacklist{"cheapdeals"})

	assert.Equal(t, []string{"Hello there", "", "Goodbye"}, result.Document.Texts())
	require.Len(t, result.Matches, 1)
	assert.Equal(t, Match{NodeIndex: 1, Entry: "cheapdeals"}, result.Matches[0])
	assert.Equal(t, "Advertising found in node 1 (cheapdeals)", result.Matches[0].String())
}

func TestApplyEmptyBlacklistIsNoop(t *testing.T) {
	texts := []string{"Hello there", "Buy now at CheapDeals", "Goodbye"}
	doc := newDocument(texts...)

	result := Apply(doc, Blacklist{})

	assert.Equal(t, texts, result.Document.Texts())
	assert.Empty(t, result.Matches)
}

func TestApplySkipsEmptyNodes(t *testing.T) {
	doc := newDocument("", "ads everywhere")

	result := Apply(doc, Blacklist{"ads"})

	require.Len(t, result.Matches, 1)
	assert.Equal(t, 1, result.Matches[0].NodeIndex)
	assert.Equal(t, []string{"", ""}, doc.Texts())
}

func TestApplyIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		entry string
		match bool
	}{
		{"upper", "Visit our ADS page now", "ads", true},
		{"mixed", "Synced And Corrected By someone", "synced and corrected by", true},
		{"non ascii", "ÜBERSETZT VON WWW.EXAMPLE.DE", "übersetzt von", true},
		{"punctuation kept", "www.example.com", "www. example", false},
		{"entry not trimmed", "visit cheapdeals", " cheapdeals ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDocument(tt.text)
			result := Apply(doc, Blacklist{tt.entry})

			assert.Equal(t, tt.match, len(result.Matches) == 1)
			assert.Equal(t, tt.match, doc.Nodes[0].Text == "")
		})
	}
}

func TestApplyReportsFirstEntryOnly(t *testing.T) {
	doc := newDocument("subtitles by www.example.com", "www.other.org")

	result := Apply(doc, Blacklist{"subtitles by", "www."})

	assert.Equal(t, []Match{
		{NodeIndex: 0, Entry: "subtitles by"},
		{NodeIndex: 1, Entry: "www."},
	}, result.Matches)
}

func TestApplyKeepsCountOrderAndTiming(t *testing.T) {
	doc := newDocument("one", "two ads", "three", "ADS four", "five")
	before := make([]subtitle.Node, len(doc.Nodes))
	copy(before, doc.Nodes)

	Apply(doc, Blacklist{"ads"})

	require.Len(t, doc.Nodes, len(before))
	for i := range before {
		assert.Equal(t, before[i].Index, doc.Nodes[i].Index)
		assert.Equal(t, before[i].Start, doc.Nodes[i].Start)
		assert.Equal(t, before[i].End, doc.Nodes[i].End)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	blacklist := Blacklist{"cheapdeals", "www."}
	once := Apply(newDocument("Hi", "www.cheapdeals.com", "Bye"), blacklist)
	onceTexts := once.Document.Texts()

	twice := Apply(once.Document, blacklist)

	assert.Equal(t, onceTexts, twice.Document.Texts())
	assert.Empty(t, twice.Matches)
}

func TestApplyUnmatchedRoundTrip(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,500\nWorld\nagain\n\n"

	doc, err := subtitle.Decode(raw, "srt")
	require.NoError(t, err)

	result := Apply(doc, Blacklist{"cheapdeals"})
	require.Empty(t, result.Matches)

	out, err := subtitle.Encode(result.Document, "srt")
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}
