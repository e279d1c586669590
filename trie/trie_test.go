package trie

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertAll(t *testing.T, s *Set, words ...string) {
	t.Helper()
	for _, w := range words {
		require.True(t, s.Insert([]rune(w)), "inserting %q", w)
	}
}

func wordsAsStrings(s *Set) []string {
	var out []string
	for _, w := range s.Words() {
		out = append(out, string(w))
	}
	return out
}

func TestInsertContains(t *testing.T) {
	s := NewSet()
	assert.True(t, s.IsEmpty())
	insertAll(t, s, "cat", "cats", "dog")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains([]rune("cat")))
	assert.True(t, s.Contains([]rune("cats")))
	assert.True(t, s.Contains([]rune("dog")))
	assert.False(t, s.Contains([]rune("ca")))
	assert.False(t, s.Contains([]rune("catss")))
	assert.False(t, s.Contains([]rune("d")))
	assert.False(t, s.Contains(nil))
}

func TestInsertIdempotent(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Insert([]rune("cat")))
	assert.False(t, s.Insert([]rune("cat")))
	assert.Equal(t, 1, s.Len())
}

func TestInsertEmptyWordRejected(t *testing.T) {
	s := NewSet()
	assert.False(t, s.Insert(nil))
	assert.False(t, s.Insert([]rune{}))
	assert.Equal(t, 0, s.Len())
}

func TestInsertPrefixOfExistingWord(t *testing.T) {
	s := NewSet()
	insertAll(t, s, "cats", "cat", "ca")
	assert.Equal(t, []string{"ca", "cat", "cats"}, wordsAsStrings(s))
}

func TestRemove(t *testing.T) {
	s := NewSet()
	insertAll(t, s, "cat", "cats", "car")

	assert.True(t, s.Remove([]rune("cat")))
	assert.False(t, s.Contains([]rune("cat")))
	assert.True(t, s.Contains([]rune("cats")))
	assert.True(t, s.Contains([]rune("car")))
	assert.Equal(t, 2, s.Len())

	// Removing an absent word is a no-op.
	assert.False(t, s.Remove([]rune("cat")))
	assert.False(t, s.Remove([]rune("zebra")))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Remove([]rune("cats")))
	assert.True(t, s.Remove([]rune("car")))
	assert.True(t, s.IsEmpty())
}

func TestRemoveEmptyWord(t *testing.T) {
	s := NewSet()
	insertAll(t, s, "cat")
	assert.False(t, s.Remove(nil))
	assert.Equal(t, 1, s.Len())
}

func TestRemovePrunesChildlessNodes(t *testing.T) {
	s := NewSet()
	insertAll(t, s, "a", "abcdef")
	require.True(t, s.Remove([]rune("abcdef")))

	// Only the nodes for "a" (key + terminal) should remain live.
	assert.Equal(t, []string{"a"}, wordsAsStrings(s))
	live := 0
	for _, n := range s.nodes {
		if n.terminal || n.label != 0 {
			live++
		}
	}
	assert.Equal(t, 2, live)
}

func TestClear(t *testing.T) {
	s := NewSet()
	insertAll(t, s, "cat", "dog")
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains([]rune("cat")))
	insertAll(t, s, "bird")
	assert.Equal(t, []string{"bird"}, wordsAsStrings(s))
}

func TestWordsLexicographicOrder(t *testing.T) {
	s := NewSet()
	insertAll(t, s, "tot", "bat", "that", "cat", "hat", "tater", "tots", "ton")
	assert.Equal(t,
		[]string{"bat", "cat", "hat", "tater", "that", "ton", "tot", "tots"},
		wordsAsStrings(s))
}

func TestIterUnicodeWords(t *testing.T) {
	s := NewSet()
	insertAll(t, s, "señor", "sel", "日本語", "日本")

	it := s.Iter()
	var words []string
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		words = append(words, string(w))
	}
	assert.Equal(t, []string{"sel", "señor", "日本", "日本語"}, words)
}

func TestIterEmptySet(t *testing.T) {
	it := NewSet().Iter()
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestRandomizedAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(20260802))
	s := NewSet()
	model := make(map[string]bool)

	randWord := func() string {
		n := 1 + rng.Intn(6)
		word := make([]rune, n)
		for i := range word {
			word[i] = rune('a' + rng.Intn(4))
		}
		return string(word)
	}

	for i := 0; i < 2000; i++ {
		w := randWord()
		if rng.Intn(3) == 0 {
			assert.Equal(t, model[w], s.Remove([]rune(w)), "remove %q", w)
			delete(model, w)
		} else {
			assert.Equal(t, !model[w], s.Insert([]rune(w)), "insert %q", w)
			model[w] = true
		}
	}

	require.Equal(t, len(model), s.Len())

	expected := make([]string, 0, len(model))
	for w := range model {
		expected = append(expected, w)
	}
	sort.Strings(expected)
	assert.Equal(t, expected, wordsAsStrings(s))
}
