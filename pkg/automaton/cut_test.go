package automaton

import (
	"errors"
	"reflect"
	"testing"
)

func buildWuhanDict(t *testing.T) *Automaton {
	t.Helper()
	a := New()
	words := map[string]uint32{
		"武汉": 10, "武汉市": 5, "长江": 8, "长江大桥": 3, "大桥": 4, "市长": 6,
	}
	for w, f := range words {
		if err := a.Insert(w, f); err != nil {
			t.Fatalf("insert %q: %v", w, err)
		}
	}
	a.Build()
	return a
}

func TestCutPrefersHigherWeightedSegmentation(t *testing.T) {
	a := buildWuhanDict(t)
	got, err := a.Cut("武汉市长江大桥", false)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	want := []string{"武汉市", "长江大桥"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cut = %v, want %v", got, want)
	}
}

func TestCutAllEmitsEveryMatchAndSingleChars(t *testing.T) {
	a := buildWuhanDict(t)
	got, err := a.Cut("武汉市长江大桥", true)
	if err != nil {
		t.Fatalf("cut_all: %v", err)
	}
	gotSet := map[string]bool{}
	for _, w := range got {
		gotSet[w] = true
	}
	for _, want := range []string{"武汉", "武汉市", "市长", "长江", "长江大桥", "大桥", "武", "汉", "市", "长", "江", "大", "桥"} {
		if !gotSet[want] {
			t.Fatalf("cut_all missing %q in %v", want, got)
		}
	}
}

func TestCutGluesDigitAndAlphaRuns(t *testing.T) {
	a := buildWuhanDict(t)
	got, err := a.Cut("12345dfasdgas武汉市长江大桥", false)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if len(got) < 2 || got[0] != "12345" || got[1] != "dfasdgas" {
		t.Fatalf("cut = %v, want leading [\"12345\", \"dfasdgas\", ...]", got)
	}
}

func TestCutIsIdempotentAndDoesNotMutateVisibleState(t *testing.T) {
	a := buildWuhanDict(t)
	a.Reset()
	a.TransString("武汉")
	stateBefore := a.GetState()

	first, err := a.Cut("武汉市长江大桥", false)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if a.GetState() != stateBefore {
		t.Fatalf("state mutated by cut: before=%d after=%d", stateBefore, a.GetState())
	}

	second, err := a.Cut("武汉市长江大桥", false)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cut not idempotent: %v != %v", first, second)
	}
}

func TestCutRejectsInvalidUTF8AndRestoresState(t *testing.T) {
	a := buildWuhanDict(t)
	a.Reset()
	a.TransString("武")
	stateBefore := a.GetState()

	_, err := a.Cut(string([]byte{0xff, 0xfe}), false)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
	if a.GetState() != stateBefore {
		t.Fatalf("state not restored after error: before=%d after=%d", stateBefore, a.GetState())
	}
}

func TestCutEmptyTextReturnsNoWords(t *testing.T) {
	a := buildWuhanDict(t)
	got, err := a.Cut("", false)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("cut(\"\") = %v, want empty", got)
	}
}

func TestCutFallsBackToSingleCharactersWithNoDictionaryMatch(t *testing.T) {
	// Non-ASCII, non-dictionary characters trigger neither a dictionary
	// match nor the digit/alpha run-glue rule, so each falls back to its
	// own single-character segment.
	a := New()
	_ = a.Insert("zzz", 1)
	a.Build()

	got, err := a.Cut("你好呀", false)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	want := []string{"你", "好", "呀"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cut = %v, want %v", got, want)
	}
}
