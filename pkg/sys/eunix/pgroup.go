//go:build unix

package eunix

import (
	"os"

	"golang.org/x/sys/unix"
)

// Getpgrp returns the process group of the calling process.
func Getpgrp() int {
	return unix.Getpgrp()
}

// GroupAlive reports whether the process group pgid still has live members,
// using a non-blocking wait. An error from the wait means the kernel no
// longer knows any child in the group, i.e. every member has terminated and
// been reaped.
func GroupAlive(pgid int) bool {
	var status unix.WaitStatus
	_, err := unix.Wait4(-pgid, &status, unix.WNOHANG, nil)
	return err == nil
}

// RedirectTTYOutput points each standard fd whose terminal has gone away at
// /dev/null, so that later reads and writes fail cleanly instead of
// returning EIO forever.
func RedirectTTYOutput() {
	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer null.Close()
	for fd := 0; fd < 3; fd++ {
		if _, err := unix.IoctlGetTermios(fd, getAttrIOCTL); err == unix.EIO {
			dupFd(int(null.Fd()), fd)
		}
	}
}
