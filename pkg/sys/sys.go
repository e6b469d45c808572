// Package sys provides OS utilities shared across packages.
//
// The subpackage eunix wraps the terminal and process-group syscalls that
// job control is built on.
package sys

import (
	"github.com/mattn/go-isatty"
)

// IsATTY determines whether the given file descriptor refers to a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
