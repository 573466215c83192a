// Package automaton implements Core A of the segmentation engine: a
// nibble-trie Aho–Corasick automaton with node-level frequency statistics
// and a Viterbi-style maximum-probability segmenter.
//
// Each input byte is inserted as two transitions, over its high nibble then
// its low nibble, keeping the per-node transition table a fixed 16 slots
// while still representing the full 256-way byte alphabet as a depth-2
// tree. After Build, goto-compression turns the trie into a DFA: every
// (node, nibble) transition is O(1), tree or not.
package automaton

import (
	"fmt"
	"math"

	"github.com/bastiangx/segtrie/internal/logger"
	"github.com/bastiangx/segtrie/pkg/config"
	"github.com/bastiangx/segtrie/pkg/dictionary"
)

var log = logger.New("automaton")

// Automaton is a dictionary-driven multi-pattern matcher and segmenter.
// It is not safe for concurrent mutation, and Cut is not safe to call
// concurrently on the same instance (it mutates and restores the shared
// current-state field) — see CutFrom for a stateless alternative.
type Automaton struct {
	cfg       config.AutomatonConfig
	segCfg    config.SegmenterConfig
	nodes     []Node
	wordCount uint32
	built     bool
	curState  uint32
}

// New creates an empty automaton using default tunables.
func New() *Automaton {
	return NewWithConfig(config.DefaultConfig())
}

// NewWithConfig creates an empty automaton using explicit tunables.
func NewWithConfig(cfg *config.Config) *Automaton {
	a := &Automaton{
		cfg:    cfg.Automaton,
		segCfg: cfg.Segmenter,
		nodes:  make([]Node, 1, max(cfg.Automaton.InitNodeCapacity, 1)),
	}
	a.nodes[0] = newNode(root, root)
	return a
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Insert adds a UTF-8 keyword with the given frequency (summing into any
// existing entry for the same keyword). Insert after Build reports
// ErrInvariantViolated; re-Build is not supported once the failure links
// have been compressed.
func (a *Automaton) Insert(s string, freq uint32) error {
	if a.built {
		return fmt.Errorf("insert after build: %w", ErrInvariantViolated)
	}
	length, ok := countUTF8Chars(s)
	if !ok {
		return fmt.Errorf("insert %q: %w", s, ErrInvalidUTF8)
	}
	if uint32(length) > a.cfg.MaxUTF8Length {
		return fmt.Errorf("insert %q: length %d exceeds %d: %w", s, length, a.cfg.MaxUTF8Length, ErrLengthOverflow)
	}

	u := root
	for i := 0; i < len(s); i++ {
		b := s[i]
		u = a.step(u, b>>offset)
		u = a.step(u, b&nibble)
	}

	if uint64(a.nodes[u].End)+uint64(freq) > uint64(a.cfg.MaxFrequency) {
		return fmt.Errorf("insert %q: %w", s, ErrFrequencyOverflow)
	}
	if a.nodes[u].End == 0 {
		a.wordCount++
	}
	a.nodes[u].End += freq
	a.nodes[u].Length = uint32(length)
	return nil
}

// step walks or creates the tree edge from u over the given nibble,
// returning the child's index. A slot is "empty" when it is zero or when
// the referenced child's Parent no longer points back to u — the latter
// means a prior Build already overwrote this slot with a goto-compressed
// fail shortcut (only possible if Insert were erroneously called after
// Build, which is rejected above, but kept here to match the reference
// emptiness check exactly).
func (a *Automaton) step(u uint32, nib byte) uint32 {
	v := a.nodes[u].Ch[nib]
	if v == 0 || a.nodes[v].Parent != u {
		id := uint32(len(a.nodes))
		a.nodes = append(a.nodes, newNode(id, u))
		a.nodes[u].Ch[nib] = id
		return id
	}
	return v
}

// Build finalizes trie_sum, log_end, log_trie_sum, and the Aho–Corasick
// fail/pre links with goto compression. No further Insert is permitted
// after Build.
func (a *Automaton) Build() {
	a.getTrieSum()
	a.compressPre()
	a.getFail()
	a.compressFail()
	a.built = true
	log.Debugf("build complete: %d nodes, %d words", len(a.nodes), a.wordCount)
}

// LoadDict loads and inserts every entry from a single dictionary file.
func (a *Automaton) LoadDict(path string) error {
	return a.LoadDicts([]string{path})
}

// LoadDicts loads and inserts every entry from multiple dictionary files,
// merging duplicate keywords (even across files) before inserting, so a
// repeated keyword only walks the trie once per Build.
func (a *Automaton) LoadDicts(paths []string) error {
	idx := dictionary.NewIndex()
	for _, p := range paths {
		if err := idx.AddAll(dictionary.NewFileSource(p)); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	for _, e := range idx.Entries() {
		if err := a.Insert(e.Keyword, e.Frequency); err != nil {
			return err
		}
	}
	return nil
}

// WordCount returns the number of distinct keywords inserted.
func (a *Automaton) WordCount() uint32 {
	return a.wordCount
}

// GetNode returns a copy of the node at id.
func (a *Automaton) GetNode(id uint32) (Node, error) {
	if int(id) >= len(a.nodes) {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrIndexOutOfRange)
	}
	return a.nodes[id], nil
}

// GetState returns the automaton's current transition state.
func (a *Automaton) GetState() uint32 {
	return a.curState
}

// Reset sets the current state, defaulting to root.
func (a *Automaton) Reset(newState ...uint32) {
	if len(newState) == 0 {
		a.curState = root
		return
	}
	a.curState = newState[0]
}

// TransByte advances the current state by one byte (two nibble steps) and
// returns the resulting node.
func (a *Automaton) TransByte(b byte) Node {
	a.curState = a.trans(a.curState, b)
	return a.nodes[a.curState]
}

// TransString advances the current state by every byte of s in order and
// returns the resulting node. Does not validate UTF-8: callers that need
// validated input should use Cut, or validate with countUTF8Chars first.
func (a *Automaton) TransString(s string) Node {
	u := a.curState
	for i := 0; i < len(s); i++ {
		u = a.trans(u, s[i])
	}
	a.curState = u
	return a.nodes[u]
}

func (a *Automaton) trans(u uint32, b byte) uint32 {
	u = a.nodes[u].Ch[b>>offset]
	u = a.nodes[u].Ch[b&nibble]
	return u
}

// GetBorders returns the chain node, fail[node], fail[fail[node]], ...
// up to (not including) root. Because fail is path-compressed to
// accepting states, this chain enumerates every keyword ending at the
// position represented by node.
func (a *Automaton) GetBorders(nodeID uint32) ([]Node, error) {
	n, err := a.GetNode(nodeID)
	if err != nil {
		return nil, err
	}
	var borders []Node
	for n.ID != root {
		borders = append(borders, n)
		n = a.nodes[n.Fail]
	}
	return borders, nil
}

func (a *Automaton) getTrieSum() {
	for i := range a.nodes {
		a.nodes[i].TrieSum = uint64(a.nodes[i].End)
	}
	for i := len(a.nodes) - 1; i >= 1; i-- {
		a.nodes[a.nodes[i].Parent].TrieSum += a.nodes[i].TrieSum
	}
	for i := range a.nodes {
		a.nodes[i].LogEnd = math.Log2(float64(a.nodes[i].End))
		a.nodes[i].LogTrieSum = math.Log2(float64(a.nodes[i].TrieSum))
	}
}

// compressPre rewrites Pre to the nearest proper ancestor with End > 0 (or
// root), following the tree-edge parent chain recorded at insert time.
// Must run before getFail/compressFail overwrite Ch (which pre never
// reads, since it walks Parent, not Ch).
func (a *Automaton) compressPre() {
	for i := 1; i < len(a.nodes); i++ {
		p := a.nodes[i].Pre
		for p != root && a.nodes[p].End == 0 {
			p = a.nodes[p].Pre
		}
		a.nodes[i].Pre = p
	}
}

// getFail performs the standard BFS over tree edges from root's children,
// computing fail links and overwriting non-tree ch[] entries in place
// (goto compression): the trie becomes a DFA where every transition is
// O(1), tree or not.
func (a *Automaton) getFail() {
	queue := make([]uint32, 0, len(a.nodes))
	for i := 0; i < fanOut; i++ {
		v := a.nodes[root].Ch[i]
		if v != 0 && a.nodes[v].Parent == root {
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for i := 0; i < fanOut; i++ {
			v := a.nodes[u].Ch[i]
			if v != 0 && a.nodes[v].Parent == u {
				a.nodes[v].Fail = a.nodes[a.nodes[u].Fail].Ch[i]
				queue = append(queue, v)
			} else {
				a.nodes[u].Ch[i] = a.nodes[a.nodes[u].Fail].Ch[i]
			}
		}
	}
}

// compressFail rewrites Fail to the nearest ancestor in the fail chain
// with End > 0 (or root), so GetBorders never has to skip non-accepting
// nodes itself.
func (a *Automaton) compressFail() {
	for i := 1; i < len(a.nodes); i++ {
		p := a.nodes[i].Fail
		for p != root && a.nodes[p].End == 0 {
			p = a.nodes[p].Fail
		}
		a.nodes[i].Fail = p
	}
}
