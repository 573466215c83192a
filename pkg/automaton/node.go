package automaton

const (
	// offset is the nibble width in bits: each input byte is split into a
	// high nibble and a low nibble, each consumed as one trie transition.
	offset = 4
	// fanOut is the per-node transition table width (1<<offset).
	fanOut = 1 << offset
	nibble = 0x0f

	// root is always node index 0.
	root uint32 = 0
)

// Node is one state of the nibble-trie Aho–Corasick automaton. Every
// cross-reference (parent, pre, fail, ch) is an index into the owning
// Automaton's node slice rather than a pointer, so the automaton can be
// serialized and restored as a flat array (see Snapshot/LoadSnapshot).
type Node struct {
	ID     uint32 `msgpack:"id"`
	Parent uint32 `msgpack:"parent"`
	// Ch is the 16-way nibble transition table. Before Build, a zero
	// entry (or an entry whose target's Parent doesn't point back to
	// this node) means "no tree edge yet". After Build, every entry is a
	// real transition: goto-compression rewrites non-tree edges to the
	// fail-target's child, so transition is always O(1), and a zero entry
	// then means a transition back to root.
	Ch [fanOut]uint32 `msgpack:"ch"`
	// Pre is the nearest proper ancestor that is an accepting state
	// (end > 0), path-compressed after Build. Used by cut() to find the
	// normalizing trie_sum for a dictionary match.
	Pre uint32 `msgpack:"pre"`
	// Fail is the Aho–Corasick failure link, path-compressed to the
	// nearest accepting ancestor (or root) after Build.
	Fail uint32 `msgpack:"fail"`
	// End is the accumulated frequency of keywords ending at this node.
	// Zero means the node is not accepting.
	End uint32 `msgpack:"end"`
	// Length is the UTF-8 character count of the accepted keyword (0 if
	// non-accepting).
	Length uint32 `msgpack:"length"`
	// TrieSum is the subtree sum of End over this node and its
	// descendants, computed once by Build.
	TrieSum uint64 `msgpack:"trie_sum"`
	// LogEnd and LogTrieSum are base-2 logs of End/TrieSum, precomputed
	// as additive log-probability costs for the segmenter. LogEnd is
	// only ever read on accepting nodes.
	LogEnd     float64 `msgpack:"log_end"`
	LogTrieSum float64 `msgpack:"log_trie_sum"`
}

func newNode(id, parent uint32) Node {
	return Node{ID: id, Parent: parent, Pre: parent, Fail: root}
}

// Accepting reports whether a node terminates at least one keyword.
func (n Node) Accepting() bool {
	return n.End > 0
}
