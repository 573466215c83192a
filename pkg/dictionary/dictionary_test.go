package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLineDefaultsFrequencyToOne(t *testing.T) {
	entry, ok := ParseLine("武汉")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if entry.Keyword != "武汉" || entry.Frequency != 1 {
		t.Fatalf("entry = %+v, want {武汉 1}", entry)
	}
}

func TestParseLineReadsFrequencyAndIgnoresTrailingFields(t *testing.T) {
	entry, ok := ParseLine("武汉市 10 extra ignored")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if entry.Keyword != "武汉市" || entry.Frequency != 10 {
		t.Fatalf("entry = %+v, want {武汉市 10}", entry)
	}
}

func TestParseLineFallsBackToOneOnUnparseableFrequency(t *testing.T) {
	entry, ok := ParseLine("长江 notanumber")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if entry.Frequency != 1 {
		t.Fatalf("frequency = %d, want 1", entry.Frequency)
	}
}

func TestParseLineRejectsEmptyLine(t *testing.T) {
	if _, ok := ParseLine("   "); ok {
		t.Fatal("expected ok=false for blank line")
	}
}

func TestFileSourceParsesEveryNonEmptyLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	contents := "武汉 10\n长江 8\n\n大桥\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	src := NewFileSource(path)
	entries, err := src.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	want := []Entry{
		{Keyword: "武汉", Frequency: 10},
		{Keyword: "长江", Frequency: 8},
		{Keyword: "大桥", Frequency: 1},
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %+v, want %+v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestFileSourceMissingFileReportsWrappedPathError(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.txt"))
	_, err := src.Entries()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("err = %v, want wrapped *os.PathError", err)
	}
}

func TestSliceSourceReturnsListVerbatim(t *testing.T) {
	list := []Entry{{Keyword: "a", Frequency: 1}, {Keyword: "b", Frequency: 2}}
	src := &SliceSource{List: list}
	entries, err := src.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 || entries[0] != list[0] || entries[1] != list[1] {
		t.Fatalf("entries = %+v, want %+v", entries, list)
	}
}

func TestIndexMergesDuplicatesBySummingFrequency(t *testing.T) {
	idx := NewIndex()
	idx.Add("武汉", 10)
	idx.Add("长江", 8)
	idx.Add("武汉", 5)

	if idx.Duplicates() != 1 {
		t.Fatalf("duplicates = %d, want 1", idx.Duplicates())
	}

	entries := idx.Entries()
	byKeyword := map[string]uint32{}
	for _, e := range entries {
		byKeyword[e.Keyword] = e.Frequency
	}
	if byKeyword["武汉"] != 15 {
		t.Fatalf("武汉 frequency = %d, want 15", byKeyword["武汉"])
	}
	if byKeyword["长江"] != 8 {
		t.Fatalf("长江 frequency = %d, want 8", byKeyword["长江"])
	}
}

func TestIndexAddAllPropagatesSourceErrors(t *testing.T) {
	idx := NewIndex()
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.txt"))
	if err := idx.AddAll(src); err == nil {
		t.Fatal("expected error from missing file source")
	}
}

func TestIndexAddAllMergesAcrossSources(t *testing.T) {
	idx := NewIndex()
	first := &SliceSource{List: []Entry{{Keyword: "武汉", Frequency: 10}}}
	second := &SliceSource{List: []Entry{{Keyword: "武汉", Frequency: 5}, {Keyword: "大桥", Frequency: 4}}}

	if err := idx.AddAll(first); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if err := idx.AddAll(second); err != nil {
		t.Fatalf("add second: %v", err)
	}

	byKeyword := map[string]uint32{}
	for _, e := range idx.Entries() {
		byKeyword[e.Keyword] = e.Frequency
	}
	if byKeyword["武汉"] != 15 {
		t.Fatalf("武汉 frequency = %d, want 15", byKeyword["武汉"])
	}
	if byKeyword["大桥"] != 4 {
		t.Fatalf("大桥 frequency = %d, want 4", byKeyword["大桥"])
	}
}
