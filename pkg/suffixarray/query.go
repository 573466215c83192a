package suffixarray

import (
	"fmt"
	"math"
)

// ProbEntry is one (continuation character, probability) pair returned by
// GetProb.
type ProbEntry struct {
	Char string
	Prob float64
}

// sufLess reports whether s[pos:] < t (bytewise, unsigned). A suffix
// shorter than the compared prefix of t is considered less than t.
func (a *SuffixArray) sufLess(pos int, t []byte) bool {
	for i := 0; i < len(t); i++ {
		if pos+i >= len(a.s) {
			return true
		}
		if a.s[pos+i] != t[i] {
			return a.s[pos+i] < t[i]
		}
	}
	return false
}

// tLess reports whether t < s[pos:] (bytewise, unsigned).
func (a *SuffixArray) tLess(t []byte, pos int) bool {
	for i := 0; i < len(t); i++ {
		if pos+i >= len(a.s) {
			return false
		}
		if t[i] != a.s[pos+i] {
			return t[i] < a.s[pos+i]
		}
	}
	return false
}

func (a *SuffixArray) lowerBound(t []byte) int {
	l, r := 1, a.k+1
	for l < r {
		mid := (l + r) / 2
		if mid != a.k+1 && a.sufLess(a.sa[mid], t) {
			l = mid + 1
		} else {
			r = mid
		}
	}
	return l
}

func (a *SuffixArray) upperBound(t []byte) int {
	l, r := 1, a.k+1
	for l < r {
		mid := (l + r) / 2
		if mid == a.k+1 || a.tLess(t, a.sa[mid]) {
			r = mid
		} else {
			l = mid + 1
		}
	}
	return l
}

// GetCount returns the number of UTF-8 character-aligned occurrences of t
// as a prefix of some suffix of the indexed corpus.
func (a *SuffixArray) GetCount(t string) int {
	tb := []byte(t)
	return a.upperBound(tb) - a.lowerBound(tb)
}

// GetProb enumerates every distinct next-character continuation of t in
// the indexed corpus, as (character, probability) pairs. Each probability
// is the continuation's count divided by the number of occurrences of t,
// tail occurrence included, so the pairs sum to 1 unless t also ends the
// corpus. If t has no continuation, the sole entry is ("[UNK]", 0).
func (a *SuffixArray) GetProb(t string) []ProbEntry {
	tb := []byte(t)
	l, r := a.lowerBound(tb), a.upperBound(tb)
	p := l

	// Exclude the suffix where t is exactly the tail of s: it has no
	// following character to report.
	if p < r {
		if id, err := a.GetID(p); err == nil && id == len(a.s)-len(tb) {
			p++
		}
	}

	var entries []ProbEntry
	for p < r {
		L, R := p, r
		nextOffset := a.sa[p] + len(tb)
		charLen := utf8Len(a.s[nextOffset])
		sub := a.s[a.sa[p] : a.sa[p]+len(tb)+charLen]

		for L < R {
			mid := (L + R) / 2
			if mid == r || a.tLess(sub, a.sa[mid]) {
				R = mid
			} else {
				L = mid + 1
			}
		}

		entries = append(entries, ProbEntry{
			Char: string(sub[len(tb):]),
			Prob: float64(L-p) / float64(r-l),
		})
		p = L
	}

	if len(entries) == 0 {
		entries = append(entries, ProbEntry{Char: "[UNK]", Prob: 0})
	}
	return entries
}

// GetBranchEntropy returns the Shannon entropy (natural log) of the
// distribution of characters following t in the indexed corpus.
func (a *SuffixArray) GetBranchEntropy(t string) float64 {
	var be float64
	for _, e := range a.GetProb(t) {
		be += -e.Prob * math.Log(e.Prob+1e-20)
	}
	return be
}

// GetMutualInformation returns the minimum, over every UTF-8-aligned
// internal split point of t, of the pointwise mutual information between
// the two halves. Returns 0 for t of length <= 1 character or for t that
// does not occur in the corpus. t must be well-formed UTF-8.
func (a *SuffixArray) GetMutualInformation(t string) (float64, error) {
	tb := []byte(t)
	if !validateUTF8(tb) {
		return 0, fmt.Errorf("get_mutual_information: %w", ErrInvalidUTF8)
	}
	if len(runeStarts(tb)) <= 1 {
		return 0, nil
	}

	count := a.GetCount(t)
	if count == 0 {
		return 0, nil
	}

	total := float64(a.Size())
	logCount := math.Log(float64(count))
	logTotal := math.Log(total)

	pmi := math.Inf(1)
	for i := utf8Len(tb[0]); i < len(tb); i += utf8Len(tb[i]) {
		left := a.GetCount(string(tb[:i]))
		right := a.GetCount(string(tb[i:]))
		candidate := logTotal + logCount - math.Log(float64(left)) - math.Log(float64(right))
		if candidate < pmi {
			pmi = candidate
		}
	}
	return pmi, nil
}

// runeStarts returns the byte offsets of every UTF-8 character start in b
// (b is assumed already validated).
func runeStarts(b []byte) []int {
	var starts []int
	for i := 0; i < len(b); {
		starts = append(starts, i)
		i += utf8Len(b[i])
	}
	return starts
}
