//go:build linux

package eunix

import "golang.org/x/sys/unix"

// Dup2 is not defined on all linux architectures.
func dupFd(from, to int) error {
	return unix.Dup3(from, to, 0)
}
