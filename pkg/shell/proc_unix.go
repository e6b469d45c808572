//go:build unix

package shell

import (
	"golang.org/x/sys/unix"

	"src.marlin.sh/pkg/jobctl"
)

// SigContResume resumes g by sending SIGCONT to its process group. It
// reports whether the group still existed to be signalled.
func SigContResume(g *jobctl.Group) bool {
	pgid, ok := g.Pgid()
	if !ok {
		return false
	}
	return unix.Kill(-pgid, unix.SIGCONT) == nil
}
