// Package dictfile reads words from and writes words to persistent
// dictionary storage. Two formats are provided: plain-text word lists
// (one word per line, UTF-8 or BOM-prefixed UTF-16) and read-only XML
// documents queried with an XPath expression.
//
// Each backend tracks a change token for its file so the dictionary layer
// can detect external modifications between operations.
package dictfile

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrReadOnly is returned by WriteAll on a backend that cannot write.
	ErrReadOnly = errors.New("dictionary file is read-only")

	// ErrStale is returned by WriteAll when the file changed on disk since
	// the last read; writing would clobber the external edit.
	ErrStale = errors.New("dictionary file changed since last read")
)

// changeToken identifies one version of a file's contents.
type changeToken struct {
	modTime  time.Time
	size     int64
	checksum string
}

// tracker caches the change token observed at the last successful read or
// write. A file that has never been observed compares as changed once it
// exists, which forces the initial load.
type tracker struct {
	path  string
	token changeToken
	have  bool
}

// hasChanged reports whether the file differs from the cached token.
// An mtime+size comparison is the fast path; when it is inconclusive the
// contents are checksummed, since touching a file does not change its words.
func (t *tracker) hasChanged() bool {
	info, err := os.Stat(t.path)
	if err != nil {
		// A missing file matches only the never-observed token.
		return t.have
	}
	if !t.have {
		return true
	}
	if t.token.modTime.Equal(info.ModTime()) && t.token.size == info.Size() {
		return false
	}

	checksum, err := checksumPath(t.path)
	if err != nil {
		return true
	}
	if checksum == t.token.checksum {
		// Contents are unchanged even though the mtime moved; remember the
		// new mtime so the next check takes the fast path again.
		t.token.modTime = info.ModTime()
		t.token.size = info.Size()
		return false
	}
	return true
}

func (t *tracker) record(modTime time.Time, size int64, checksum string) {
	t.token = changeToken{modTime: modTime, size: size, checksum: checksum}
	t.have = true
}

func checksumPath(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "os.Open")
	}
	defer f.Close()

	checksummer := NewChecksummer()
	if _, err := io.Copy(checksummer, f); err != nil {
		return "", errors.Wrap(err, "io.Copy")
	}
	return checksummer.Checksum(), nil
}
