package dictfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/ascens/ascens/transcode"
	"github.com/ascens/ascens/trie"
)

// XMLFile is a read-only dictionary backend over an XML document.
// An XPath expression selects the nodes whose concatenated text content is
// one word each; lexicon formats like LIFT are read this way without the
// engine knowing anything about their schema.
type XMLFile struct {
	path    string
	expr    *xpath.Expr
	tracker tracker
}

// NewXMLFile returns a backend for the XML document at path. wordXPath is
// compiled eagerly so a malformed expression fails here rather than on the
// first read.
func NewXMLFile(path string, wordXPath string) (*XMLFile, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "filepath.Abs")
	}
	expr, err := xpath.Compile(wordXPath)
	if err != nil {
		return nil, errors.Wrap(err, "xpath.Compile")
	}
	return &XMLFile{path: path, expr: expr, tracker: tracker{path: path}}, nil
}

// Path returns the absolute path of the XML document.
func (x *XMLFile) Path() string {
	return x.path
}

// HasChanged reports whether the document differs from the last read.
func (x *XMLFile) HasChanged() bool {
	return x.tracker.hasChanged()
}

// IsReadOnly always reports true; the XML format is never written.
func (x *XMLFile) IsReadOnly() bool {
	return true
}

// ReadInto parses the document, evaluates the XPath expression, and inserts
// each selected node's text content as one NFD-normalized word.
func (x *XMLFile) ReadInto(set *trie.Set) error {
	f, err := os.Open(x.path)
	if err != nil {
		return errors.Wrap(err, "os.Open")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "f.Stat")
	}

	checksummer := NewChecksummer()
	doc, err := xmlquery.Parse(io.TeeReader(f, checksummer))
	if err != nil {
		return errors.Wrap(err, "xmlquery.Parse")
	}

	for _, node := range xmlquery.QuerySelectorAll(doc, x.expr) {
		word := strings.TrimSpace(node.InnerText())
		if word == "" {
			continue
		}
		set.Insert(transcode.NFDString(word))
	}

	x.tracker.record(info.ModTime(), info.Size(), checksummer.Checksum())
	return nil
}

// WriteAll always fails with ErrReadOnly.
func (x *XMLFile) WriteAll(*trie.Set) error {
	return errors.WithStack(ErrReadOnly)
}
