package automaton

import (
	"fmt"

	"github.com/bastiangx/segtrie/pkg/config"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the on-wire msgpack representation of a built Automaton. Only
// the node array and counters are persisted — cfg/segCfg are re-supplied by
// the caller of LoadSnapshot, since tunables are a deployment concern, not
// part of the indexed data.
type snapshot struct {
	Nodes     []Node `msgpack:"nodes"`
	WordCount uint32 `msgpack:"word_count"`
}

// Snapshot encodes the built automaton's node array to msgpack, so it can
// be restored later with LoadSnapshot without re-inserting every keyword.
// Only callable after Build.
func (a *Automaton) Snapshot() ([]byte, error) {
	if !a.built {
		return nil, fmt.Errorf("snapshot before build: %w", ErrInvariantViolated)
	}
	data, err := msgpack.Marshal(snapshot{Nodes: a.nodes, WordCount: a.wordCount})
	if err != nil {
		return nil, fmt.Errorf("automaton: snapshot encode: %w", err)
	}
	return data, nil
}

// LoadSnapshot decodes a msgpack snapshot produced by Snapshot into a
// ready-to-query Automaton — Build does not need to run again, since the
// encoded nodes already carry compressed ch[]/fail/pre and the trie_sum
// and log fields.
func LoadSnapshot(data []byte) (*Automaton, error) {
	return LoadSnapshotWithConfig(data, config.DefaultConfig())
}

// LoadSnapshotWithConfig is LoadSnapshot with explicit tunables; the
// segmenter settings govern Cut on the restored automaton. The restored
// automaton counts as built, so Insert on it reports ErrInvariantViolated.
func LoadSnapshotWithConfig(data []byte, cfg *config.Config) (*Automaton, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("automaton: snapshot decode: %w", err)
	}
	if len(snap.Nodes) == 0 {
		return nil, fmt.Errorf("automaton: empty snapshot: %w", ErrInvariantViolated)
	}
	a := &Automaton{
		cfg:       cfg.Automaton,
		segCfg:    cfg.Segmenter,
		nodes:     snap.Nodes,
		wordCount: snap.WordCount,
		built:     true,
	}
	log.Debugf("restored automaton from snapshot: %d nodes, %d words", len(a.nodes), a.wordCount)
	return a, nil
}
