package store

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCmdHistory(t *testing.T) {
	st, cleanup := MustTempStore()
	defer cleanup()

	if seq, err := st.NextCmdSeq(); err != nil || seq != 1 {
		t.Errorf("NextCmdSeq on empty store = %d, %v, want 1, nil", seq, err)
	}

	cmds := []string{"fg", "vi notes", "sleep 1000"}
	for i, cmd := range cmds {
		seq, err := st.AddCmd(cmd)
		if err != nil {
			t.Fatalf("AddCmd(%q): %v", cmd, err)
		}
		if seq != i+1 {
			t.Errorf("AddCmd(%q) = seq %d, want %d", cmd, seq, i+1)
		}
	}

	text, err := st.Cmd(2)
	if err != nil || text != "vi notes" {
		t.Errorf("Cmd(2) = %q, %v, want %q, nil", text, err, "vi notes")
	}

	if _, err := st.Cmd(42); !errors.Is(err, ErrNoCmd) {
		t.Errorf("Cmd(42) error = %v, want %v", err, ErrNoCmd)
	}

	got, err := st.CmdsWithSeq(1, 3)
	if err != nil {
		t.Fatalf("CmdsWithSeq: %v", err)
	}
	want := []Cmd{{Text: "fg", Seq: 1}, {Text: "vi notes", Seq: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CmdsWithSeq(1, 3) (-want +got):\n%s", diff)
	}
}
