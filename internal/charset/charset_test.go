package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestToUTF8KeepsUTF8(t *testing.T) {
	in := []byte("Hola, ¿qué tal?")

	out, name, err := ToUTF8(in)
	require.NoError(t, err)
	assert.Equal(t, UTF8, name)
	assert.Equal(t, in, out)
}

func TestToUTF8StripsBOM(t *testing.T) {
	out, name, err := ToUTF8([]byte("\xef\xbb\xbf1\n00:00:01,000 --> 00:00:02,000\nHi\n"))
	require.NoError(t, err)
	assert.Equal(t, UTF8, name)
	assert.Equal(t, "1\n00:00:01,000 --> 00:00:02,000\nHi\n", string(out))
}

func TestToUTF8TranscodesLatin1(t *testing.T) {
	text := "Ceci est un sous-titre très célèbre, écrit à la française. " +
		"Les élèves préfèrent les séries où les héros sont déçus et fâchés."
	in, err := charmap.ISO8859_1.NewEncoder().String(text)
	require.NoError(t, err)

	out, name, err := ToUTF8([]byte(in))
	require.NoError(t, err)
	assert.NotEqual(t, UTF8, name)
	assert.Contains(t, string(out), "très célèbre")
}
