// Package dictionary exposes the word-level spell-checking API: membership,
// mutation, and suggestions over a trie kept in sync with a backing file.
package dictionary

import (
	"log"

	"github.com/pkg/errors"

	"github.com/ascens/ascens/transcode"
	"github.com/ascens/ascens/trie"
)

// Default tolerances for suggestion searches.
const (
	DefaultErrorTolerance     = 2
	DefaultBestErrorTolerance = 6
)

// ErrEmptyWord is returned when a caller passes a word that normalizes to
// the empty sequence.
var ErrEmptyWord = errors.New("word is empty")

// Backend is the persistent storage a Dictionary keeps in sync with.
// Implementations report external modification through HasChanged and cache
// a change token on each successful ReadInto or WriteAll.
type Backend interface {
	// HasChanged reports whether the storage was modified since the last
	// successful ReadInto or WriteAll.
	HasChanged() bool

	// IsReadOnly reports whether WriteAll can ever succeed.
	IsReadOnly() bool

	// ReadInto populates the set with the stored words.
	ReadInto(set *trie.Set) error

	// WriteAll replaces the stored words with the set's contents.
	WriteAll(set *trie.Set) error

	// Path identifies the storage for diagnostics.
	Path() string
}

// Dictionary answers "is this a word?" and "what words are close to this?"
// against a word list loaded from a Backend.
//
// Before every operation the dictionary consults the backend: if the file
// changed externally, the trie is dropped and repopulated, so an external
// writer's edits are observed at the next operation. A Dictionary is not
// safe for concurrent use.
type Dictionary struct {
	words    *trie.Set
	backend  Backend
	kPrimary int
	kBest    int
}

// New returns an empty dictionary with no backend and default tolerances.
func New() *Dictionary {
	return &Dictionary{
		words:    trie.NewSet(),
		kPrimary: DefaultErrorTolerance,
		kBest:    DefaultBestErrorTolerance,
	}
}

// Load adopts the backend. Any previously loaded words are dropped and the
// next operation reads from the new backend.
func (d *Dictionary) Load(backend Backend) {
	d.backend = backend
	d.words.Clear()
}

// Contains reports whether the word is in the dictionary.
func (d *Dictionary) Contains(word string) (bool, error) {
	w := transcode.NFDString(word)
	if len(w) == 0 {
		return false, errors.WithStack(ErrEmptyWord)
	}
	if err := d.ensureFresh(); err != nil {
		return false, err
	}
	return d.words.Contains(w), nil
}

// Add inserts the word. Adding a word that is already present succeeds
// without touching the backing file.
func (d *Dictionary) Add(word string) error {
	w := transcode.NFDString(word)
	if len(w) == 0 {
		return errors.WithStack(ErrEmptyWord)
	}
	if err := d.ensureFresh(); err != nil {
		return err
	}
	if !d.words.Insert(w) {
		return nil
	}
	return d.flush()
}

// Remove deletes the word. Removing an absent word succeeds without
// touching the backing file.
func (d *Dictionary) Remove(word string) error {
	w := transcode.NFDString(word)
	if len(w) == 0 {
		return errors.WithStack(ErrEmptyWord)
	}
	if err := d.ensureFresh(); err != nil {
		return err
	}
	if !d.words.Remove(w) {
		return nil
	}
	return d.flush()
}

// RemoveAll deletes every word.
func (d *Dictionary) RemoveAll() error {
	if err := d.ensureFresh(); err != nil {
		return err
	}
	if d.words.IsEmpty() {
		return nil
	}
	d.words.Clear()
	return d.flush()
}

// EntryCount returns the number of words in the dictionary.
func (d *Dictionary) EntryCount() (int, error) {
	if err := d.ensureFresh(); err != nil {
		return 0, err
	}
	return d.words.Len(), nil
}

// Suggest returns candidate corrections for the word:
// first split candidates (the word with a space inserted, when both halves
// are themselves words), then every word within the primary tolerance, and,
// only when that finds nothing, the words at the minimum achievable distance
// within the best tolerance.
func (d *Dictionary) Suggest(word string) ([]string, error) {
	w := transcode.NFDString(word)
	if len(w) == 0 {
		return nil, errors.WithStack(ErrEmptyWord)
	}
	if err := d.ensureFresh(); err != nil {
		return nil, err
	}

	var suggestions []string
	for i := 1; i < len(w); i++ {
		if d.words.Contains(w[:i]) && d.words.Contains(w[i:]) {
			split := make([]rune, 0, len(w)+1)
			split = append(split, w[:i]...)
			split = append(split, ' ')
			split = append(split, w[i:]...)
			suggestions = append(suggestions, string(split))
		}
	}

	matches := d.words.ApproximateFind(w, d.kPrimary)
	if len(matches) == 0 {
		// best_find could in principle reach the whole dictionary, so it
		// runs under its own ceiling.
		matches = d.words.BestFind(w, d.kBest)
	}
	for _, m := range matches {
		suggestions = append(suggestions, string(m))
	}
	return suggestions, nil
}

// Words returns every word in the dictionary in lexicographic order.
func (d *Dictionary) Words() ([]string, error) {
	if err := d.ensureFresh(); err != nil {
		return nil, err
	}
	words := make([]string, 0, d.words.Len())
	it := d.words.Iter()
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		words = append(words, string(w))
	}
	return words, nil
}

// ErrorTolerance returns the maximum edit distance for primary suggestions.
func (d *Dictionary) ErrorTolerance() int {
	return d.kPrimary
}

// SetErrorTolerance sets the maximum edit distance for primary suggestions.
func (d *Dictionary) SetErrorTolerance(k int) {
	d.kPrimary = k
}

// BestErrorTolerance returns the ceiling for the fallback best-match search.
func (d *Dictionary) BestErrorTolerance() int {
	return d.kBest
}

// SetBestErrorTolerance sets the ceiling for the fallback best-match search.
func (d *Dictionary) SetBestErrorTolerance(k int) {
	d.kBest = k
}

// ensureFresh reloads the trie when the backend reports an external change.
func (d *Dictionary) ensureFresh() error {
	if d.backend == nil || !d.backend.HasChanged() {
		return nil
	}
	log.Printf("Dictionary file %s changed, reloading\n", d.backend.Path())
	d.words.Clear()
	return d.backend.ReadInto(d.words)
}

// flush writes the trie back to the backend. A read-only backend is left
// alone; a backend that changed since the last read refuses the write, and
// the external edit is absorbed by the next ensureFresh.
func (d *Dictionary) flush() error {
	if d.backend == nil || d.backend.IsReadOnly() {
		return nil
	}
	return d.backend.WriteAll(d.words)
}
