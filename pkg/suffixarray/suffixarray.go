// Package suffixarray implements Core B of the segmentation engine: a
// generalized suffix array over a raw byte string, built by prefix-doubling
// radix sort and then re-projected onto UTF-8 character boundaries so every
// query (count, branching entropy, pointwise mutual information) respects
// character alignment rather than arbitrary byte offsets.
package suffixarray

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidUTF8 is returned by New when the input is not well-formed
// UTF-8.
var ErrInvalidUTF8 = errors.New("suffixarray: invalid utf-8")

// ErrIndexOutOfRange is returned by GetID/GetSuf/GetRank for an
// out-of-bounds rank or suffix id.
var ErrIndexOutOfRange = errors.New("suffixarray: index out of range")

const byteAlphabetMax = 255

// SuffixArray indexes a byte string for prefix-count, next-token
// probability, branching-entropy, and pointwise-mutual-information
// queries. It is immutable once built and safe for concurrent read-only
// use (no instance holds mutable query state, unlike automaton.Automaton).
type SuffixArray struct {
	s  []byte
	sa []int // sa[1..k]: rank -> UTF-8 character start offset (0-based)
	rk []int // rk[0..k-1]: character index (j-th UTF-8 character) -> rank (1-based)
	k  int   // number of UTF-8 characters in s
}

// New builds a suffix array over s. s must be well-formed UTF-8.
func New(s string) (*SuffixArray, error) {
	sb := []byte(s)
	if !validateUTF8(sb) {
		return nil, ErrInvalidUTF8
	}

	sa := &SuffixArray{s: sb}
	sa.build()
	return sa, nil
}

// build runs prefix-doubling suffix sort over every byte-start position,
// then restricts ranks to UTF-8 character-start positions only.
func (a *SuffixArray) build() {
	n := len(a.s)
	if n == 0 {
		a.k = 0
		a.sa = []int{0}
		a.rk = nil
		return
	}

	m := byteAlphabetMax
	cnt := make([]int, max(n, m)+2)
	id := make([]int, n+1)
	key := make([]int, n+1)

	sa := make([]int, n+1)
	rk := make([]int, 2*n+1)
	oldrk := make([]int, 2*n+1)

	// length-1 pass: counting sort by first byte
	for i := 1; i <= n; i++ {
		rk[i] = int(a.s[i-1])
		cnt[rk[i]]++
	}
	for i := 1; i <= m; i++ {
		cnt[i] += cnt[i-1]
	}
	for i := n; i >= 1; i-- {
		sa[cnt[rk[i]]] = i
		cnt[rk[i]]--
	}

	p := 0
	for length := 1; length <= n; length, m = length<<1, p {
		p = 0
		for i := n; i > n-length; i-- {
			p++
			id[p] = i
		}
		for i := 1; i <= n; i++ {
			if sa[i] > length {
				p++
				id[p] = sa[i] - length
			}
		}

		for i := range cnt {
			cnt[i] = 0
		}
		for i := 1; i <= n; i++ {
			key[i] = rk[id[i]]
			cnt[key[i]]++
		}
		for i := 1; i <= m; i++ {
			cnt[i] += cnt[i-1]
		}
		for i := n; i >= 1; i-- {
			sa[cnt[key[i]]] = id[i]
			cnt[key[i]]--
		}

		copy(oldrk, rk)
		p = 0
		for i := 1; i <= n; i++ {
			if i > 1 && suffixEqualOn(oldrk, sa[i-1], sa[i], length) {
				rk[sa[i]] = p
			} else {
				p++
				rk[sa[i]] = p
			}
		}
		if p == n {
			break
		}
	}

	// Restrict to UTF-8 character-start positions: collect the byte-level
	// rank of each such position (1-indexed offsets into s), sort those
	// ranks, and renumber to compact ranks 1..k.
	copy(oldrk, rk)
	var positions []int // 1-indexed byte offsets of UTF-8 starts
	for i, length := 0, 0; i < n; i += length {
		length = utf8Len(a.s[i])
		positions = append(positions, i+1)
	}
	k := len(positions)

	realRk := make([]int, k)
	for i, pos := range positions {
		realRk[i] = oldrk[pos]
	}
	sort.Ints(realRk)

	a.k = k
	a.rk = make([]int, k)
	a.sa = make([]int, k+1)
	for i, pos := range positions {
		rank := lowerBoundInt(realRk, oldrk[pos]) + 1
		a.rk[i] = rank
		a.sa[rank] = pos - 1 // back to 0-indexed byte offset
	}
}

func suffixEqualOn(rk []int, x, y, w int) bool {
	return rk[x] == rk[y] && rk[x+w] == rk[y+w]
}

func lowerBoundInt(xs []int, target int) int {
	lo, hi := 0, len(xs)
	for lo < hi {
		mid := (lo + hi) / 2
		if xs[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Size returns the number of UTF-8 characters indexed.
func (a *SuffixArray) Size() int {
	return a.k
}

// GetID returns the 0-indexed byte offset of the suffix at the given
// 1-indexed rank.
func (a *SuffixArray) GetID(rank int) (int, error) {
	if rank < 1 || rank > a.k {
		return 0, fmt.Errorf("rank %d: %w", rank, ErrIndexOutOfRange)
	}
	return a.sa[rank], nil
}

// GetSuf returns the byte-string suffix starting at the given 1-indexed
// rank.
func (a *SuffixArray) GetSuf(rank int) (string, error) {
	id, err := a.GetID(rank)
	if err != nil {
		return "", err
	}
	return string(a.s[id:]), nil
}

// GetRank returns the 1-indexed rank of the UTF-8 character starting at
// the given 0-indexed byte offset.
func (a *SuffixArray) GetRank(id int) (int, error) {
	if id < 0 || id >= len(a.s) {
		return 0, fmt.Errorf("id %d: %w", id, ErrIndexOutOfRange)
	}
	// rk is indexed by character, so count the characters before id.
	i, j := 0, 0
	for i < id {
		i += utf8Len(a.s[i])
		j++
	}
	if i != id {
		return 0, fmt.Errorf("id %d: not a character start: %w", id, ErrIndexOutOfRange)
	}
	return a.rk[j], nil
}
