//go:build unix

package jobctl

// Table is the shell's job list, most recently created job first. Like
// Group, it is owned by the shell's control loop and not safe for concurrent
// use.
type Table struct {
	jobs   []*Group
	nextID int
}

// NewTable returns an empty job table.
func NewTable() *Table {
	return &Table{nextID: 1}
}

// Add creates a job group for the given pipeline and puts it at the front of
// the table. The group has no pgid until its leader process reports in.
func (t *Table) Add(command string, wantsTerminal, jobControl bool) *Group {
	g := NewGroup(t.nextID, command, wantsTerminal, jobControl)
	t.nextID++
	t.jobs = append([]*Group{g}, t.jobs...)
	return g
}

// Jobs returns the jobs, most recently created first. The slice is the
// table's own; callers must not modify it.
func (t *Table) Jobs() []*Group {
	return t.jobs
}

// ByPid returns the job one of whose member processes is pid, or nil.
func (t *Table) ByPid(pid int) *Group {
	for _, g := range t.jobs {
		for _, p := range g.pids {
			if p == pid {
				return g
			}
		}
	}
	return nil
}

// ForegroundCandidate returns the most recently created job that is stopped,
// under job control and not completed, or nil if there is none.
func (t *Table) ForegroundCandidate() *Group {
	for _, g := range t.jobs {
		if g.Stopped() && g.WantsJobControl() && !g.Completed() {
			return g
		}
	}
	return nil
}

// Promote moves g to the front of the table, making it the job that job ids
// like % resolve to first.
func (t *Table) Promote(g *Group) {
	for i, j := range t.jobs {
		if j == g {
			copy(t.jobs[1:i+1], t.jobs[:i])
			t.jobs[0] = g
			return
		}
	}
}

// Reap removes completed jobs from the table. It is driven by the shell's
// SIGCHLD reaper after it has marked jobs completed.
func (t *Table) Reap() {
	live := t.jobs[:0]
	for _, g := range t.jobs {
		if !g.Completed() {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(t.jobs); i++ {
		t.jobs[i] = nil
	}
	t.jobs = live
}
