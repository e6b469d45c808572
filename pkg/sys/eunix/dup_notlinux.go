//go:build unix && !linux

package eunix

import "golang.org/x/sys/unix"

func dupFd(from, to int) error {
	return unix.Dup2(from, to)
}
