//go:build unix

// Package shell implements the builtin-level job control operations that the
// interactive loop dispatches to: bringing a job to the foreground and
// resuming a job in the background.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"src.marlin.sh/pkg/jobctl"
	"src.marlin.sh/pkg/logutil"
	"src.marlin.sh/pkg/store"
)

var logger = logutil.GetLogger("[shell] ")

// Job selection errors.
var (
	ErrNoSuitableJob = errors.New("there are no suitable jobs")
	ErrAmbiguousJob  = errors.New("ambiguous job specification")
	ErrNotAJob       = errors.New("not a job")
	ErrNotANumber    = errors.New("not a number")
	ErrNoJobControl  = errors.New("job is not under job control")
	ErrNotResumed    = errors.New("job did not resume")
)

// Resume continues a stopped job's process group and reports whether the
// group still existed to be signalled. The real implementation is
// SigContResume; tests substitute their own.
type Resume func(g *jobctl.Group) bool

// Fg brings a job to the foreground and resumes it. With no spec it picks
// the most recently created stopped job that is under job control; with one
// spec it resolves the job owning that pid. Terminal handoff failures do not
// abort the operation: the job is still resumed, just without guaranteed
// terminal control, and the failure goes to the log stream.
func Fg(t *jobctl.Table, tty jobctl.TTY, resume Resume, st store.Store, errOut io.Writer, specs ...string) error {
	g, err := selectJob(t, specs)
	if err != nil {
		return err
	}

	fmt.Fprintf(errOut, "Send job %d (%s) to foreground\n", g.ID(), g.Command())

	t.Promote(g)
	g.SetIsForeground(true)

	if st != nil {
		if _, err := st.AddCmd(g.Command()); err != nil {
			logger.Printf("history: %v", err)
		}
	}

	// With stdin not a terminal (job control in a script or pipe) there is
	// no ownership to hand over; skip the terminal work and just resume.
	onTerminal := true
	if c, ok := tty.(terminalChecker); ok {
		onTerminal = c.IsTerminal()
	}

	if onTerminal {
		// The job reads the terminal as it left it: replay the modes saved
		// when it was last suspended, and undo any non-blocking mode the
		// shell's own editor put stdin into.
		if g.WantsTerminal() && g.Modes() != nil {
			if err := tty.WriteModes(g.Modes()); err != nil {
				logger.Printf("tcsetattr: %v", err)
			}
		}
		if b, ok := tty.(blockingMaker); ok {
			b.MakeBlocking()
		}
	}

	transfer := jobctl.NewTtyTransfer(tty)
	defer transfer.Close()
	defer transfer.Reclaim()

	if onTerminal {
		transfer.ToGroup(g)
	}
	resumed := resume(g)
	if g.Stopped() {
		transfer.SaveModes()
	}

	if !resumed {
		return fmt.Errorf("job %d (%s): %w", g.ID(), g.Command(), ErrNotResumed)
	}
	return nil
}

type blockingMaker interface {
	MakeBlocking()
}

// terminalChecker is implemented by TTYs that can tell whether they are
// attached to a terminal at all, like jobctl.StdinTTY.
type terminalChecker interface {
	IsTerminal() bool
}

func selectJob(t *jobctl.Table, specs []string) (*jobctl.Group, error) {
	if len(specs) == 0 {
		g := t.ForegroundCandidate()
		if g == nil {
			return nil, ErrNoSuitableJob
		}
		return g, nil
	}

	if len(specs) > 1 {
		// Naming more than one job is an error either way; resolve the
		// first spec only to pick the more precise message.
		if pid, err := strconv.Atoi(specs[0]); err == nil && pid > 0 && t.ByPid(pid) != nil {
			return nil, ErrAmbiguousJob
		}
		return nil, fmt.Errorf("%q: %w", specs[0], ErrNotAJob)
	}

	pid, err := strconv.Atoi(specs[0])
	if err != nil || pid <= 0 {
		return nil, fmt.Errorf("%q: %w", specs[0], ErrNotANumber)
	}

	g := t.ByPid(pid)
	// A job whose group has no pgid yet is still being constructed and
	// cannot be foregrounded.
	if g == nil || g.Completed() {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNoSuitableJob)
	}
	if _, ok := g.Pgid(); !ok {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNoSuitableJob)
	}
	if !g.WantsJobControl() {
		return nil, fmt.Errorf("job %d (%s): %w", g.ID(), g.Command(), ErrNoJobControl)
	}
	return g, nil
}
