//go:build unix

package sys

import (
	"os/signal"
	"syscall"
)

// IgnoringTTOU runs f while SIGTTOU and SIGTTIN are ignored.
//
// A process that is not in the terminal's foreground process group is stopped
// by SIGTTOU when it calls tcsetpgrp. The shell needs to be immune to that
// while it moves terminal ownership around, even when it has itself been put
// in the background.
func IgnoringTTOU(f func()) {
	signal.Ignore(syscall.SIGTTOU, syscall.SIGTTIN)
	defer signal.Reset(syscall.SIGTTOU, syscall.SIGTTIN)
	f()
}
