package trie

import "context"

// unreachable marks dynamic-programming cells outside the computed band.
// It is small enough that adding an edit cost cannot overflow on 32-bit ints.
const unreachable = 1 << 30

// ApproximateFind returns every stored word whose Damerau-Levenshtein
// distance from query is at most k, in the order of the preorder trie walk
// (lexicographic on the candidate word).
func (s *Set) ApproximateFind(query []rune, k int) [][]rune {
	return s.ApproximateFindContext(context.Background(), query, k)
}

// ApproximateFindContext is ApproximateFind with cancellation: when ctx is
// done the search stops and returns whatever it has collected so far.
func (s *Set) ApproximateFindContext(ctx context.Context, query []rune, k int) [][]rune {
	if k < 0 {
		return nil
	}
	return s.search(ctx, query, k, false)
}

// BestFind returns every stored word at the minimum achievable distance from
// query, provided that minimum is at most kMax. kMax is a hard ceiling so a
// query resembling nothing in the dictionary does not walk the whole trie.
func (s *Set) BestFind(query []rune, kMax int) [][]rune {
	return s.BestFindContext(context.Background(), query, kMax)
}

// BestFindContext is BestFind with cancellation.
func (s *Set) BestFindContext(ctx context.Context, query []rune, kMax int) [][]rune {
	if kMax < 0 {
		return nil
	}
	return s.search(ctx, query, kMax, true)
}

// searcher carries the state of one approximate-match walk. Column i of the
// DP matrix holds edit distances between prefixes of the query and the
// length-i path prefix of the current descent; columns are retained on ascent
// so sibling branches sharing the prefix reuse them.
type searcher struct {
	set   *Set
	query []rune
	k     int
	best  bool

	cols [][]int // one DP column per trie depth
	cb   []int   // leftmost row with value <= k, per depth
	ce   []int   // rightmost such row, per depth; -1 means the column is dead

	path []rune
	out  [][]rune
}

func (s *Set) search(ctx context.Context, query []rune, k int, best bool) [][]rune {
	if s.root == nilNode {
		return nil
	}
	sr := &searcher{set: s, query: query, k: k, best: best}
	sr.initBaseColumn()
	sr.walk(ctx, s.root, 0)
	return sr.out
}

// initBaseColumn fills column 0 with distances from the empty candidate
// prefix: row j costs j deletions.
func (sr *searcher) initBaseColumn() {
	m := len(sr.query)
	sr.grow(0)
	col := sr.cols[0]
	hi := minInt(sr.k+1, m)
	for j := 0; j <= hi; j++ {
		col[j] = j
	}
	sr.cb[0] = 0
	sr.ce[0] = minInt(sr.k, m)
}

func (sr *searcher) walk(ctx context.Context, n nodeRef, depth int) {
	for ; n != nilNode; n = sr.set.nodes[n].next {
		if ctx.Err() != nil {
			return
		}
		nd := sr.set.nodes[n]
		if nd.terminal {
			d := sr.cols[depth][len(sr.query)]
			if d <= sr.k {
				if sr.best && d < sr.k {
					sr.k = d
					sr.out = sr.out[:0]
				}
				word := make([]rune, len(sr.path))
				copy(word, sr.path)
				sr.out = append(sr.out, word)
			}
			continue
		}

		var prevLabel rune
		if depth > 0 {
			prevLabel = sr.path[depth-1]
		}
		sr.grow(depth + 1)
		if !sr.computeColumn(depth+1, nd.label, prevLabel) {
			// No row within tolerance: every extension of this prefix is
			// at least as far away, so the whole subtree is skipped.
			continue
		}
		sr.path = append(sr.path, nd.label)
		sr.walk(ctx, nd.child, depth+1)
		sr.path = sr.path[:depth]
	}
}

// computeColumn fills column i for a descent into a key node labeled label,
// restricted to the band of rows that were within tolerance in column i-1.
// It reports whether any row of the new column is within tolerance.
func (sr *searcher) computeColumn(i int, label, prevLabel rune) bool {
	m := len(sr.query)
	col := sr.cols[i]
	for j := range col {
		col[j] = unreachable
	}
	prev := sr.cols[i-1]

	lo, hi := sr.cb[i-1], minInt(sr.ce[i-1]+1, m)
	var prev2 []int
	if i >= 2 {
		prev2 = sr.cols[i-2]
	}

	cb, ce := -1, -1
	for j := lo; j <= hi; j++ {
		var d int
		if j == 0 {
			d = i
		} else {
			subst := 1
			if sr.query[j-1] == label {
				subst = 0
			}
			d = col[j-1] + 1 // delete from query
			if v := prev[j] + 1; v < d {
				d = v // insert into query
			}
			if v := prev[j-1] + subst; v < d {
				d = v // match or replace
			}
			if i >= 2 && j >= 2 && sr.query[j-2] == label && sr.query[j-1] == prevLabel {
				if v := prev2[j-2] + 1; v < d {
					d = v // adjacent transposition
				}
			}
		}
		col[j] = d
		if d <= sr.k {
			if cb < 0 {
				cb = j
			}
			ce = j
		}
	}

	if ce < 0 {
		sr.ce[i] = -1
		return false
	}
	sr.cb[i] = cb
	sr.ce[i] = ce
	return true
}

// grow ensures column storage exists for the given depth. Columns are sized
// once from the query length and reused across sibling descents.
func (sr *searcher) grow(depth int) {
	for len(sr.cols) <= depth {
		sr.cols = append(sr.cols, make([]int, len(sr.query)+1))
		sr.cb = append(sr.cb, 0)
		sr.ce = append(sr.ce, -1)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
