package hostapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWordListFile(t *testing.T, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, contents, 0644))
	return path
}

func appendWords(t *testing.T, path string, words ...string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	defer f.Close()
	for _, w := range words {
		_, err := f.WriteString(w + "\n")
		require.NoError(t, err)
	}
}

// parseSuggestions unpacks the NUL-terminated strings Suggest wrote to buf.
func parseSuggestions(buf []rune) []string {
	var out []string
	var cur []rune
	for _, r := range buf {
		if r != 0 {
			cur = append(cur, r)
			continue
		}
		if len(cur) == 0 {
			break
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}
	return out
}

func suggestWords(t *testing.T, h *Handle, word string, bufSize, kPrimary, kBest int) []string {
	t.Helper()
	buf := make([]rune, bufSize)
	require.True(t, Suggest(h, word, buf, kPrimary, kBest))
	return parseSuggestions(buf)
}

func TestEmptyDictionaryContains(t *testing.T) {
	h := LoadDictionary(createWordListFile(t, nil))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	assert.False(t, IsWord(h, "dictionary"))
}

func TestAddCheckRemoveRoundTrip(t *testing.T) {
	path := createWordListFile(t, nil)
	h := LoadDictionary(path)
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	assert.True(t, AddWord(h, "dictionary"))
	assert.True(t, IsWord(h, "dictionary"))

	// The word was persisted to the backing file.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dictionary\n", string(data))

	assert.True(t, RemoveWord(h, "dictionary"))
	assert.False(t, IsWord(h, "dictionary"))
}

func TestSuggestExactWord(t *testing.T) {
	h := LoadDictionary(createWordListFile(t, []byte("dictionary\n")))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	suggestions := suggestWords(t, h, "dictionary", 64, 1, 0)
	assert.Equal(t, []string{"dictionary"}, suggestions)
}

func TestSuggestNeighbors(t *testing.T) {
	h := LoadDictionary(createWordListFile(t,
		[]byte("cat\nhat\nthat\nbat\ntot\nspat\ntots\ntater\nton\ngnat\n")))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	suggestions := suggestWords(t, h, "tat", 256, 1, 0)
	assert.ElementsMatch(t, []string{"cat", "hat", "that", "bat", "tot"}, suggestions)
}

func TestSuggestNoneWithinTolerance(t *testing.T) {
	h := LoadDictionary(createWordListFile(t, []byte("cat\nhat\nthat\ntot\n")))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	buf := make([]rune, 64)
	require.True(t, Suggest(h, "bad", buf, 1, 0))
	assert.Empty(t, parseSuggestions(buf))
	// An empty suggestion list is two consecutive NULs.
	assert.Equal(t, []rune{0, 0}, buf[:2])
}

func TestExternalChangeObserved(t *testing.T) {
	path := createWordListFile(t, nil)
	h := LoadDictionary(path)
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	assert.False(t, IsWord(h, "cat"))

	appendWords(t, path, "cat", "hat", "that", "bat", "tot")
	assert.True(t, IsWord(h, "cat"))

	appendWords(t, path, "potatoe", "grow", "another")
	assert.True(t, IsWord(h, "potatoe"))
}

func TestUTF8BOMFile(t *testing.T) {
	contents := append([]byte{0xEF, 0xBB, 0xBF}, []byte("cat\nhat\nthat\nbat\ntot\n")...)
	h := LoadDictionary(createWordListFile(t, contents))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	for _, w := range []string{"cat", "hat", "that", "bat", "tot"} {
		assert.True(t, IsWord(h, w), "expected %q present", w)
	}
}

func TestSuggestBufferTruncation(t *testing.T) {
	h := LoadDictionary(createWordListFile(t, []byte("cat\nhat\nthat\nbat\ntot\n")))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	// 17 cells fit four of the five candidates; the longest is dropped but
	// the call still succeeds.
	suggestions := suggestWords(t, h, "tat", 17, 1, 0)
	assert.ElementsMatch(t, []string{"cat", "hat", "bat", "tot"}, suggestions)
}

func TestSuggestBestFallback(t *testing.T) {
	h := LoadDictionary(createWordListFile(t, []byte("dictionary\n")))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	// Two edits away: invisible at kPrimary=1 unless kBest admits it.
	assert.Empty(t, suggestWords(t, h, "dixtionqry", 64, 1, 0))
	assert.Equal(t, []string{"dictionary"}, suggestWords(t, h, "dixtionqry", 64, 1, 6))
}

func TestLoadDictionaryFailures(t *testing.T) {
	assert.Nil(t, LoadDictionary(""))

	// An unreadable file fails to load.
	path := createWordListFile(t, []byte("cat\n"))
	require.NoError(t, os.Chmod(path, 0000))
	if _, err := os.ReadFile(path); err != nil {
		assert.Nil(t, LoadDictionary(path))
	}
}

func TestNilHandle(t *testing.T) {
	UnloadDictionary(nil)
	assert.False(t, IsWord(nil, "cat"))
	assert.False(t, AddWord(nil, "cat"))
	assert.False(t, RemoveWord(nil, "cat"))
	assert.False(t, Suggest(nil, "cat", make([]rune, 16), 1, 0))
}

func TestArgumentErrors(t *testing.T) {
	h := LoadDictionary(createWordListFile(t, []byte("cat\n")))
	require.NotNil(t, h)
	defer UnloadDictionary(h)

	assert.False(t, IsWord(h, ""))
	assert.False(t, AddWord(h, ""))
	assert.False(t, RemoveWord(h, ""))
	assert.False(t, Suggest(h, "", make([]rune, 16), 1, 0))
	assert.False(t, Suggest(h, "cat", nil, 1, 0))
	assert.False(t, Suggest(h, "cat", make([]rune, 1), 1, 0))
	assert.False(t, Suggest(h, "cat", make([]rune, 16), -1, 0))
}
