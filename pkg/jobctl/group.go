//go:build unix

// Package jobctl implements the terminal-ownership half of job control:
// which process group owns the controlling terminal, how the terminal is
// handed to a job, and how the shell takes it back when the job stops or
// finishes.
//
// A Group and the Table holding it are owned by a single goroutine, the
// shell's control loop. While a TtyTransfer is bound to a Group nothing else
// may mutate that Group; this package uses no locks because the shell never
// shares job state across goroutines.
package jobctl

import (
	"src.marlin.sh/pkg/sys/eunix"
)

// Group represents the OS process group backing one job (pipeline).
type Group struct {
	id      int
	command string

	// pgid of the group, or -1 until the group's leader has entered its own
	// process group. Set at most once.
	pgid int

	// Whether the job needs interactive access to the terminal. Fixed at
	// creation: false for fully redirected or background pipelines.
	wantsTerminal bool

	// Whether the job runs under job control, i.e. in its own process group.
	jobControl bool

	isForeground bool
	stopped      bool
	completed    bool

	pids []int

	// Terminal modes saved while this group last owned the terminal.
	modes *eunix.Termios
}

// NewGroup returns a Group with no process group id yet.
func NewGroup(id int, command string, wantsTerminal, jobControl bool) *Group {
	return &Group{
		id:            id,
		command:       command,
		pgid:          -1,
		wantsTerminal: wantsTerminal,
		jobControl:    jobControl,
	}
}

// ID returns the job id, stable for the lifetime of the job.
func (g *Group) ID() int { return g.id }

// Command returns the command line the job was created from.
func (g *Group) Command() string { return g.command }

// Pgid returns the group's process group id. The second return value is
// false until SetPgid has been called, i.e. until the group leader has
// actually entered the group.
func (g *Group) Pgid() (int, bool) {
	if g.pgid < 0 {
		return 0, false
	}
	return g.pgid, true
}

// SetPgid records the group's process group id. It must be called at most
// once, with a non-negative pgid.
func (g *Group) SetPgid(pgid int) {
	if g.pgid >= 0 {
		panic("jobctl: pgid already set")
	}
	if pgid < 0 {
		panic("jobctl: negative pgid")
	}
	g.pgid = pgid
}

// WantsTerminal reports whether the job needs interactive terminal access.
func (g *Group) WantsTerminal() bool { return g.wantsTerminal }

// WantsJobControl reports whether the job runs in its own process group.
func (g *Group) WantsJobControl() bool { return g.jobControl }

// IsForeground reports whether the shell considers this the foreground job.
func (g *Group) IsForeground() bool { return g.isForeground }

// SetIsForeground promotes or demotes the job.
func (g *Group) SetIsForeground(fg bool) { g.isForeground = fg }

// Stopped reports whether every live process in the job is stopped.
func (g *Group) Stopped() bool { return g.stopped }

// SetStopped is called by the reaper when the job's stop state changes.
func (g *Group) SetStopped(stopped bool) { g.stopped = stopped }

// Completed reports whether every process in the job has terminated.
func (g *Group) Completed() bool { return g.completed }

// SetCompleted is called by the reaper when the last process terminates.
func (g *Group) SetCompleted(completed bool) { g.completed = completed }

// Pids returns the pids of the job's member processes. The returned slice is
// the caller's to keep.
func (g *Group) Pids() []int {
	return append([]int(nil), g.pids...)
}

// AddPid records a member process.
func (g *Group) AddPid(pid int) { g.pids = append(g.pids, pid) }

// Modes returns the terminal modes saved when the job last owned the
// terminal, or nil if none were saved.
func (g *Group) Modes() *eunix.Termios { return g.modes }

// SetModes overwrites the saved terminal modes.
func (g *Group) SetModes(modes *eunix.Termios) { g.modes = modes }
