package transcode

import "golang.org/x/text/unicode/norm"

// NFD returns the canonical decomposition of the word with combining marks
// in canonical order. Dictionary keys are always stored and queried in this
// form so that precomposed and decomposed spellings of the same word match.
func NFD(word []rune) []rune {
	s := string(word)
	if norm.NFD.IsNormalString(s) {
		return word
	}
	return []rune(norm.NFD.String(s))
}

// NFDString is NFD for UTF-8 strings.
func NFDString(word string) []rune {
	return NFD([]rune(word))
}
