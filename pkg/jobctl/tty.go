//go:build unix

package jobctl

import (
	"src.marlin.sh/pkg/sys/eunix"
)

// TTY is the controlling-terminal surface the transfer protocol runs
// against. StdinTTY is the real implementation; tests substitute fakes.
type TTY interface {
	// ForegroundGroup returns the process group that owns the terminal.
	ForegroundGroup() (int, error)

	// SetForegroundGroup hands terminal ownership to pgid.
	SetForegroundGroup(pgid int) error

	// OwnGroup returns the process group of the shell itself.
	OwnGroup() int

	// GroupAlive reports whether the process group pgid still has live
	// members.
	GroupAlive(pgid int) bool

	// ReadModes captures the terminal discipline settings.
	ReadModes() (*eunix.Termios, error)

	// WriteModes replays previously captured settings, draining pending
	// output first.
	WriteModes(modes *eunix.Termios) error

	// RedirectOutput points the standard fds away from a terminal that has
	// gone away under the shell.
	RedirectOutput()
}
