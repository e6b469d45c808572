//go:build unix

package eunix

import (
	"golang.org/x/sys/unix"
)

// Tcgetpgrp returns the process group that owns the terminal open on fd.
func Tcgetpgrp(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCGPGRP)
}

// Tcsetpgrp makes pgid the terminal foreground process group.
func Tcsetpgrp(fd int, pgid int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
}
