// Package hostapi is the boundary consumed by host applications. It mirrors
// the flat handle-based contract of a spell-checking plug-in: every failure
// collapses to a boolean or nil result, and suggestion output is packed into
// a caller-supplied buffer of codepoint cells.
package hostapi

import (
	"github.com/ascens/ascens/dictfile"
	"github.com/ascens/ascens/dictionary"
)

// Default tolerances at this boundary. They differ from the dictionary
// package's own defaults; hosts that want the boundary defaults pass these
// to Suggest.
const (
	DefaultErrorTolerance     = 1
	DefaultBestErrorTolerance = 0
)

// Handle is an opaque reference to a loaded dictionary.
type Handle struct {
	dict *dictionary.Dictionary
}

// LoadDictionary opens the word-list file at path and returns a handle,
// or nil on any failure. A path that does not exist yet yields a valid
// empty dictionary; the file is created by the first added word.
func LoadDictionary(path string) *Handle {
	if path == "" {
		return nil
	}
	backend, err := dictfile.NewLineFile(path)
	if err != nil {
		return nil
	}
	dict := dictionary.New()
	dict.Load(backend)
	if _, err := dict.EntryCount(); err != nil {
		return nil
	}
	return &Handle{dict: dict}
}

// UnloadDictionary releases the handle. It is a no-op on nil.
func UnloadDictionary(h *Handle) {
	if h != nil {
		h.dict = nil
	}
}

// IsWord reports whether word is in the dictionary. It returns false on a
// nil handle, an empty word, or any failure.
func IsWord(h *Handle, word string) bool {
	if h == nil || h.dict == nil {
		return false
	}
	present, err := h.dict.Contains(word)
	return err == nil && present
}

// AddWord adds the word to the dictionary. It returns true on success,
// including the word already being present.
func AddWord(h *Handle, word string) bool {
	if h == nil || h.dict == nil {
		return false
	}
	return h.dict.Add(word) == nil
}

// RemoveWord removes the word from the dictionary. It returns true on
// success, including the word not being present.
func RemoveWord(h *Handle, word string) bool {
	if h == nil || h.dict == nil {
		return false
	}
	return h.dict.Remove(word) == nil
}

// Suggest writes suggestions for word into buf as NUL-terminated codepoint
// strings followed by a final NUL; an empty suggestion list is two
// consecutive NULs. A suggestion that does not fit in the remaining space is
// silently omitted and the call still succeeds. Suggest returns false on a
// nil handle, an empty word, a buffer smaller than two cells, a negative
// tolerance, or an internal failure.
func Suggest(h *Handle, word string, buf []rune, kPrimary, kBest int) bool {
	if h == nil || h.dict == nil || word == "" || len(buf) < 2 || kPrimary < 0 || kBest < 0 {
		return false
	}
	h.dict.SetErrorTolerance(kPrimary)
	h.dict.SetBestErrorTolerance(kBest)

	suggestions, err := h.dict.Suggest(word)
	if err != nil {
		return false
	}

	pos := 0
	for _, s := range suggestions {
		runes := []rune(s)
		// Keep room for this suggestion's NUL and the final NUL.
		if pos+len(runes)+2 > len(buf) {
			continue
		}
		pos += copy(buf[pos:], runes)
		buf[pos] = 0
		pos++
	}
	buf[pos] = 0
	pos++
	if pos == 1 {
		buf[1] = 0
	}
	return true
}
