package dictfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ascens/ascens/trie"
)

func errCause(err error) error {
	return errors.Cause(err)
}

func createTestFile(t *testing.T, contents []byte) string {
	t.Helper()
	tmpDir := t.TempDir()

	filePath := filepath.Join(tmpDir, "words.txt")
	err := os.WriteFile(filePath, contents, 0644)
	require.NoError(t, err)

	return filePath
}

func appendToTestFile(t *testing.T, path string, contents []byte) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write(contents)
	require.NoError(t, err)
}

func readWords(t *testing.T, backend interface{ ReadInto(*trie.Set) error }) []string {
	t.Helper()
	set := trie.NewSet()
	require.NoError(t, backend.ReadInto(set))

	words := make([]string, 0, set.Len())
	for _, w := range set.Words() {
		words = append(words, string(w))
	}
	return words
}
