//go:build unix

package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.marlin.sh/pkg/jobctl"
	"src.marlin.sh/pkg/store"
	"src.marlin.sh/pkg/sys/eunix"
)

const (
	shellPgrp = 10
	jobPgid   = 100
)

// fakeTTY is a terminal owned by the shell's (fake) process group.
type fakeTTY struct {
	isTerminal bool
	owner      int
	sets       []int
	modes      *eunix.Termios
	wrote      *eunix.Termios
}

func newFakeTTY() *fakeTTY { return &fakeTTY{isTerminal: true, owner: shellPgrp} }

func (f *fakeTTY) IsTerminal() bool { return f.isTerminal }

func (f *fakeTTY) ForegroundGroup() (int, error) { return f.owner, nil }

func (f *fakeTTY) SetForegroundGroup(pgid int) error {
	f.sets = append(f.sets, pgid)
	f.owner = pgid
	return nil
}

func (f *fakeTTY) OwnGroup() int { return shellPgrp }

func (f *fakeTTY) GroupAlive(pgid int) bool { return true }

func (f *fakeTTY) ReadModes() (*eunix.Termios, error) { return f.modes, nil }

func (f *fakeTTY) WriteModes(modes *eunix.Termios) error {
	f.wrote = modes
	return nil
}

func (f *fakeTTY) RedirectOutput() {}

func stoppedJob(tab *jobctl.Table, command string) *jobctl.Group {
	g := tab.Add(command, true, true)
	g.SetPgid(jobPgid)
	g.AddPid(jobPgid)
	g.SetStopped(true)
	return g
}

// resumeOK marks the job running again, like the real reaper does when the
// group gets SIGCONT.
func resumeOK(g *jobctl.Group) bool {
	g.SetStopped(false)
	return true
}

func resumeGone(g *jobctl.Group) bool { return false }

func TestFgSelectionErrors(t *testing.T) {
	tab := jobctl.NewTable()
	g := stoppedJob(tab, "sleep 1000")
	noCtl := tab.Add("builtin-ish", true, false)
	noCtl.SetPgid(101)
	noCtl.AddPid(101)
	done := tab.Add("true", true, true)
	done.SetPgid(102)
	done.AddPid(102)
	done.SetCompleted(true)
	_ = g

	tests := []struct {
		name    string
		tab     *jobctl.Table
		specs   []string
		wantErr error
	}{
		{"no jobs at all", jobctl.NewTable(), nil, ErrNoSuitableJob},
		{"spec not a number", tab, []string{"%1"}, ErrNotANumber},
		{"unknown pid", tab, []string{"4242"}, ErrNoSuitableJob},
		{"completed job", tab, []string{"102"}, ErrNoSuitableJob},
		{"no job control", tab, []string{"101"}, ErrNoJobControl},
		{"two specs, first matches", tab, []string{"100", "101"}, ErrAmbiguousJob},
		{"two specs, no match", tab, []string{"4242", "101"}, ErrNotAJob},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var sb strings.Builder
			err := Fg(test.tab, newFakeTTY(), resumeOK, nil, &sb, test.specs...)
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Fg(%v) = %v, want %v", test.specs, err, test.wantErr)
			}
		})
	}
}

func TestFgResumesAndReclaims(t *testing.T) {
	tab := jobctl.NewTable()
	g := stoppedJob(tab, "sleep 1000")
	tty := newFakeTTY()
	var sb strings.Builder

	if err := Fg(tab, tty, resumeOK, nil, &sb); err != nil {
		t.Fatalf("Fg: %v", err)
	}

	if !strings.Contains(sb.String(), "Send job 1 (sleep 1000) to foreground") {
		t.Errorf("message = %q", sb.String())
	}
	if !g.IsForeground() {
		t.Errorf("job not marked foreground")
	}
	wantSets := []int{jobPgid, shellPgrp}
	if diff := cmp.Diff(wantSets, tty.sets); diff != "" {
		t.Errorf("terminal assignments (-want +got):\n%s", diff)
	}
	if tty.owner != shellPgrp {
		t.Errorf("terminal owner after Fg = %d, want the shell", tty.owner)
	}
}

func TestFgReplaysSavedModes(t *testing.T) {
	tab := jobctl.NewTable()
	g := stoppedJob(tab, "vi notes")
	saved := &eunix.Termios{Lflag: 42}
	g.SetModes(saved)
	tty := newFakeTTY()
	var sb strings.Builder

	if err := Fg(tab, tty, resumeOK, nil, &sb); err != nil {
		t.Fatalf("Fg: %v", err)
	}
	if tty.wrote != saved {
		t.Errorf("saved modes were not replayed to the terminal")
	}
}

func TestFgSavesModesWhenJobStopsAgain(t *testing.T) {
	tab := jobctl.NewTable()
	g := stoppedJob(tab, "vi notes")
	tty := newFakeTTY()
	tty.modes = &eunix.Termios{Lflag: 7}
	var sb strings.Builder

	// Resume succeeds but the job is stopped again by the time we look.
	resume := func(g *jobctl.Group) bool { return true }
	if err := Fg(tab, tty, resume, nil, &sb); err != nil {
		t.Fatalf("Fg: %v", err)
	}
	if g.Modes() != tty.modes {
		t.Errorf("modes not saved into the group after it stopped again")
	}
	if tty.owner != shellPgrp {
		t.Errorf("terminal owner = %d, want reclaimed by the shell", tty.owner)
	}
}

func TestFgWithoutTerminalStillResumes(t *testing.T) {
	tab := jobctl.NewTable()
	g := stoppedJob(tab, "sleep 1000")
	g.SetModes(&eunix.Termios{Lflag: 42})
	tty := newFakeTTY()
	tty.isTerminal = false
	var sb strings.Builder

	resumed := false
	resume := func(g *jobctl.Group) bool {
		resumed = true
		g.SetStopped(false)
		return true
	}
	if err := Fg(tab, tty, resume, nil, &sb); err != nil {
		t.Fatalf("Fg: %v", err)
	}
	if !resumed {
		t.Errorf("job was not resumed without a terminal")
	}
	if len(tty.sets) != 0 {
		t.Errorf("issued %d ownership syscalls without a terminal, want 0", len(tty.sets))
	}
	if tty.wrote != nil {
		t.Errorf("replayed modes without a terminal")
	}
}

func TestFgReclaimsWhenResumeFails(t *testing.T) {
	tab := jobctl.NewTable()
	stoppedJob(tab, "sleep 1000")
	tty := newFakeTTY()
	var sb strings.Builder

	err := Fg(tab, tty, resumeGone, nil, &sb)
	if !errors.Is(err, ErrNotResumed) {
		t.Errorf("Fg = %v, want %v", err, ErrNotResumed)
	}
	if tty.owner != shellPgrp {
		t.Errorf("terminal owner = %d, want reclaimed by the shell", tty.owner)
	}
}

func TestFgRecordsHistory(t *testing.T) {
	st, cleanup := store.MustTempStore()
	defer cleanup()

	tab := jobctl.NewTable()
	stoppedJob(tab, "sleep 1000")
	var sb strings.Builder

	if err := Fg(tab, newFakeTTY(), resumeOK, st, &sb); err != nil {
		t.Fatalf("Fg: %v", err)
	}
	text, err := st.Cmd(1)
	if err != nil {
		t.Fatalf("Cmd(1): %v", err)
	}
	if text != "sleep 1000" {
		t.Errorf("recorded %q, want %q", text, "sleep 1000")
	}
}

func TestBg(t *testing.T) {
	tab := jobctl.NewTable()
	g := stoppedJob(tab, "make -j4")
	g.SetIsForeground(true)
	tty := newFakeTTY()
	var sb strings.Builder

	if err := Bg(tab, resumeOK, &sb); err != nil {
		t.Fatalf("Bg: %v", err)
	}
	if !strings.Contains(sb.String(), "Send job 1 (make -j4) to background") {
		t.Errorf("message = %q", sb.String())
	}
	if g.IsForeground() {
		t.Errorf("job still marked foreground after Bg")
	}
	if len(tty.sets) != 0 {
		t.Errorf("Bg touched the terminal: %v", tty.sets)
	}
}

func TestBgResumeFails(t *testing.T) {
	tab := jobctl.NewTable()
	stoppedJob(tab, "make -j4")
	var sb strings.Builder

	if err := Bg(tab, resumeGone, &sb); !errors.Is(err, ErrNotResumed) {
		t.Errorf("Bg = %v, want %v", err, ErrNotResumed)
	}
}
