//go:build unix

package shell

import (
	"fmt"
	"io"

	"src.marlin.sh/pkg/jobctl"
)

// Bg resumes a job in the background. The terminal stays with the shell;
// only the continue signal is sent.
func Bg(t *jobctl.Table, resume Resume, errOut io.Writer, specs ...string) error {
	g, err := selectJob(t, specs)
	if err != nil {
		return err
	}

	fmt.Fprintf(errOut, "Send job %d (%s) to background\n", g.ID(), g.Command())

	g.SetIsForeground(false)
	if !resume(g) {
		return fmt.Errorf("job %d (%s): %w", g.ID(), g.Command(), ErrNotResumed)
	}
	return nil
}
