//go:build unix

package jobctl

import (
	"golang.org/x/sys/unix"

	"src.marlin.sh/pkg/sys"
	"src.marlin.sh/pkg/sys/eunix"
)

// StdinTTY is the TTY open on the shell's standard input.
type StdinTTY struct{}

func (StdinTTY) ForegroundGroup() (int, error) {
	return eunix.Tcgetpgrp(0)
}

func (StdinTTY) SetForegroundGroup(pgid int) error {
	// Ignoring SIGTTOU means this succeeds even when the shell is not the
	// current owner; the protocol in TtyTransfer is careful to only reach
	// this call when the shell owns the terminal or is reclaiming it.
	var err error
	sys.IgnoringTTOU(func() {
		err = eunix.Tcsetpgrp(0, pgid)
	})
	return err
}

func (StdinTTY) OwnGroup() int {
	return eunix.Getpgrp()
}

func (StdinTTY) GroupAlive(pgid int) bool {
	return eunix.GroupAlive(pgid)
}

func (StdinTTY) ReadModes() (*eunix.Termios, error) {
	return eunix.TermiosForFd(0)
}

func (StdinTTY) WriteModes(modes *eunix.Termios) error {
	return modes.ApplyAfterDrain(0)
}

func (StdinTTY) RedirectOutput() {
	eunix.RedirectTTYOutput()
}

// IsTerminal reports whether stdin actually is a terminal. Callers can check
// this before bothering with terminal ownership at all; the transfer
// protocol would only discover it later, one ENOTTY at a time.
func (StdinTTY) IsTerminal() bool {
	return sys.IsATTY(0)
}

// MakeBlocking clears O_NONBLOCK on stdin before a job takes it over, in
// case the shell's line editor left it non-blocking.
func (StdinTTY) MakeBlocking() {
	flags, err := unix.FcntlInt(0, unix.F_GETFL, 0)
	if err != nil || flags&unix.O_NONBLOCK == 0 {
		return
	}
	unix.FcntlInt(0, unix.F_SETFL, flags&^unix.O_NONBLOCK)
}
