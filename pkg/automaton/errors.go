package automaton

import "errors"

// Sentinel errors for the automaton's error taxonomy (spec §7). Wrap with
// fmt.Errorf("...: %w", Err...) at call sites that need to attach context.
var (
	// ErrInvalidUTF8 is returned by Insert and Cut when the input is not
	// well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("automaton: invalid utf-8")
	// ErrIO is returned by LoadDict/LoadDicts when a dictionary file
	// cannot be opened or read.
	ErrIO = errors.New("automaton: dictionary i/o error")
	// ErrFrequencyOverflow is returned by Insert when adding freq would
	// exceed the configured MaxFrequency.
	ErrFrequencyOverflow = errors.New("automaton: frequency overflow")
	// ErrLengthOverflow is returned by Insert when a keyword's UTF-8
	// character count exceeds the configured MaxUTF8Length.
	ErrLengthOverflow = errors.New("automaton: utf-8 length overflow")
	// ErrIndexOutOfRange is returned by GetNode for an invalid node id.
	ErrIndexOutOfRange = errors.New("automaton: index out of range")
	// ErrInvariantViolated is returned when a contract is broken, e.g.
	// calling Insert after Build.
	ErrInvariantViolated = errors.New("automaton: invariant violated")
)
