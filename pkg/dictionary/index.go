package dictionary

import (
	"github.com/bastiangx/segtrie/internal/logger"
	"github.com/tchap/go-patricia/v2/patricia"
)

var log = logger.New("dictionary")

// Index stages dictionary entries ahead of automaton construction. It
// merges duplicate keywords (summing frequencies, matching the automaton's
// own insert semantics) using a patricia.Trie as the staging structure, so
// a corpus with many repeated entries across multiple files only drives one
// Insert per distinct keyword into the automaton.
type Index struct {
	trie       *patricia.Trie
	duplicates int
}

// NewIndex creates an empty staging index.
func NewIndex() *Index {
	return &Index{trie: patricia.NewTrie()}
}

// Add merges an entry into the index, summing frequency if the keyword was
// already staged.
func (idx *Index) Add(keyword string, freq uint32) {
	item := idx.trie.Get(patricia.Prefix(keyword))
	if item == nil {
		idx.trie.Insert(patricia.Prefix(keyword), freq)
		return
	}
	idx.duplicates++
	idx.trie.Set(patricia.Prefix(keyword), item.(uint32)+freq)
}

// AddAll merges every entry from src into the index.
func (idx *Index) AddAll(src Source) error {
	entries, err := src.Entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		idx.Add(e.Keyword, e.Frequency)
	}
	return nil
}

// Duplicates reports how many keyword collisions were merged since the
// index was created.
func (idx *Index) Duplicates() int {
	return idx.duplicates
}

// Entries flattens the staged (keyword, frequency) pairs in patricia-trie
// visit order (lexicographic over the compressed radix structure).
func (idx *Index) Entries() []Entry {
	entries := make([]Entry, 0, idx.trie.Len())
	idx.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		entries = append(entries, Entry{
			Keyword:   string(prefix),
			Frequency: item.(uint32),
		})
		return nil
	})
	if idx.duplicates > 0 {
		log.Debugf("merged %d duplicate keyword(s) while staging dictionary", idx.duplicates)
	}
	return entries
}
