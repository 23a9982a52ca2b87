package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.tally.dev/pkg/store/storedefs"
)

var testEntries = []storedefs.Entry{
	{Seq: 1, Source: "2+3*4", Result: "14"},
	{Seq: 2, Source: "(2+3)*4", Result: "20"},
	{Seq: 3, Source: "1/2", Result: "1/2"},
}

func setupStore(t *testing.T) DBStore {
	st, cleanup := MustGetTempStore()
	t.Cleanup(cleanup)
	for _, e := range testEntries {
		seq, err := st.Add(e.Source, e.Result)
		if err != nil {
			t.Fatalf("Add(%q, %q) -> error %v", e.Source, e.Result, err)
		}
		if seq != e.Seq {
			t.Fatalf("Add(%q, %q) -> seq %d, want %d", e.Source, e.Result, seq, e.Seq)
		}
	}
	return st
}

func TestNextSeq(t *testing.T) {
	st := setupStore(t)
	seq, err := st.NextSeq()
	if seq != 4 || err != nil {
		t.Errorf("NextSeq -> (%d, %v), want (4, nil)", seq, err)
	}
}

func TestEntry(t *testing.T) {
	st := setupStore(t)
	e, err := st.Entry(2)
	if err != nil {
		t.Fatalf("Entry(2) -> error %v", err)
	}
	if diff := cmp.Diff(testEntries[1], e); diff != "" {
		t.Errorf("Entry(2) (-want +got):\n%s", diff)
	}

	if _, err := st.Entry(100); err != storedefs.ErrNoSuchEntry {
		t.Errorf("Entry(100) -> error %v, want ErrNoSuchEntry", err)
	}
}

func TestEntries(t *testing.T) {
	st := setupStore(t)
	entries, err := st.Entries(0, 100)
	if err != nil {
		t.Fatalf("Entries(0, 100) -> error %v", err)
	}
	if diff := cmp.Diff(testEntries, entries); diff != "" {
		t.Errorf("Entries(0, 100) (-want +got):\n%s", diff)
	}

	entries, err = st.Entries(2, 3)
	if err != nil {
		t.Fatalf("Entries(2, 3) -> error %v", err)
	}
	if diff := cmp.Diff(testEntries[1:2], entries); diff != "" {
		t.Errorf("Entries(2, 3) (-want +got):\n%s", diff)
	}
}

func TestDel(t *testing.T) {
	st := setupStore(t)
	if err := st.Del(2); err != nil {
		t.Fatalf("Del(2) -> error %v", err)
	}
	if _, err := st.Entry(2); err != storedefs.ErrNoSuchEntry {
		t.Errorf("Entry(2) after Del -> error %v, want ErrNoSuchEntry", err)
	}
	// Sequence numbers are never reused.
	seq, err := st.NextSeq()
	if seq != 4 || err != nil {
		t.Errorf("NextSeq after Del -> (%d, %v), want (4, nil)", seq, err)
	}
}

func TestEntriesPersist(t *testing.T) {
	dbname := filepath.Join(t.TempDir(), "db")

	st, err := NewStore(dbname)
	if err != nil {
		t.Fatalf("NewStore -> error %v", err)
	}
	if _, err := st.Add("2+3", "5"); err != nil {
		t.Fatalf("Add -> error %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close -> error %v", err)
	}

	st, err = NewStore(dbname)
	if err != nil {
		t.Fatalf("NewStore (reopen) -> error %v", err)
	}
	defer st.Close()
	e, err := st.Entry(1)
	if err != nil {
		t.Fatalf("Entry(1) -> error %v", err)
	}
	want := storedefs.Entry{Seq: 1, Source: "2+3", Result: "5"}
	if e != want {
		t.Errorf("Entry(1) -> %v, want %v", e, want)
	}
}
