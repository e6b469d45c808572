//go:build unix

package eunix

import (
	"golang.org/x/sys/unix"
)

// Termios is a snapshot of the terminal discipline settings of a file
// descriptor. Jobs save and replay it verbatim across suspend and resume; no
// field is interpreted here.
type Termios unix.Termios

// TermiosForFd captures the current terminal attributes of fd.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies the attributes to fd immediately.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(term))
}

// ApplyAfterDrain applies the attributes to fd after all output already
// written to fd has been transmitted.
func (term *Termios) ApplyAfterDrain(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrDrainIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of the Termios.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}
