package dictfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"

	"github.com/ascens/ascens/transcode"
	"github.com/ascens/ascens/trie"
)

// LineFile is a word-list file with one word per line.
//
// A leading byte order mark selects the decoding: FF FE for UTF-16 LE,
// FE FF for UTF-16 BE, EF BB BF for UTF-8. Without a BOM the file is UTF-8.
// Lines may end in LF, CR, or CR+LF; surrounding ASCII whitespace is trimmed
// and blank lines are skipped.
//
// Writes rewrite the whole file atomically. A file read as UTF-16 is written
// back as UTF-16 LE with a BOM; a UTF-8 (or new) file is written as UTF-8
// without one. Either way each word is followed by a single LF.
type LineFile struct {
	path    string
	isUTF16 bool
	tracker tracker
}

// NewLineFile returns a backend for the word-list file at path.
// The file need not exist yet; a missing file reads as an empty dictionary
// and is created on the first write.
func NewLineFile(path string) (*LineFile, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "filepath.Abs")
	}
	return &LineFile{path: path, tracker: tracker{path: path}}, nil
}

// Path returns the absolute path of the word-list file.
func (l *LineFile) Path() string {
	return l.path
}

// HasChanged reports whether the file differs from the last read or write.
func (l *LineFile) HasChanged() bool {
	return l.tracker.hasChanged()
}

// IsReadOnly reports whether the file exists but denies writing.
func (l *LineFile) IsReadOnly() bool {
	info, err := os.Stat(l.path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 == 0
}

// ReadInto populates the set with the NFD-normalized words in the file and
// caches the file's change token.
func (l *LineFile) ReadInto(set *trie.Set) error {
	f, err := os.Open(l.path)
	if err != nil {
		return errors.Wrap(err, "os.Open")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "f.Stat")
	}

	checksummer := NewChecksummer()
	data, err := io.ReadAll(io.TeeReader(f, checksummer))
	if err != nil {
		return errors.Wrap(err, "io.ReadAll")
	}

	text, isUTF16 := decodeWordList(data)
	l.isUTF16 = isUTF16
	for _, word := range splitWordList(text) {
		set.Insert(transcode.NFDString(word))
	}

	l.tracker.record(info.ModTime(), info.Size(), checksummer.Checksum())
	return nil
}

// WriteAll rewrites the file with the set's words and caches the new change
// token. It fails with ErrReadOnly on an unwritable file and ErrStale when
// the file changed on disk since the last read.
func (l *LineFile) WriteAll(set *trie.Set) error {
	if l.IsReadOnly() {
		return errors.WithStack(ErrReadOnly)
	}
	if l.tracker.hasChanged() {
		return errors.WithStack(ErrStale)
	}

	var buf bytes.Buffer
	if l.isUTF16 {
		buf.Write([]byte{0xFF, 0xFE})
		for _, word := range set.Words() {
			buf.Write(transcode.RunesToUTF16(word, transcode.LittleEndian))
			buf.Write([]byte{'\n', 0x00})
		}
	} else {
		for _, word := range set.Words() {
			buf.Write(transcode.RunesToUTF8(word))
			buf.WriteByte('\n')
		}
	}

	// Write to a temporary file and rename it over the target so a crash
	// mid-write cannot leave a truncated word list behind.
	pf, err := renameio.NewPendingFile(l.path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrap(err, "renameio.NewPendingFile")
	}
	defer pf.Cleanup()

	checksummer := NewChecksummer()
	if _, err := io.Copy(pf, io.TeeReader(bytes.NewReader(buf.Bytes()), checksummer)); err != nil {
		return errors.Wrap(err, "io.Copy")
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrap(err, "renameio.CloseAtomicallyReplace")
	}

	info, err := os.Stat(l.path)
	if err != nil {
		return errors.Wrap(err, "os.Stat")
	}
	l.tracker.record(info.ModTime(), info.Size(), checksummer.Checksum())
	return nil
}

// decodeWordList sniffs the BOM, decodes the file contents to a string, and
// reports whether the file was UTF-16.
func decodeWordList(data []byte) (string, bool) {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return string(transcode.UTF16ToRunes(data[2:], transcode.LittleEndian)), true
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return string(transcode.UTF16ToRunes(data[2:], transcode.BigEndian)), true
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(transcode.UTF8ToRunes(data[3:])), false
	default:
		return string(transcode.UTF8ToRunes(data)), false
	}
}

func splitWordList(text string) []string {
	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	words := lines[:0]
	for _, line := range lines {
		word := strings.Trim(line, " \t\v\f")
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
