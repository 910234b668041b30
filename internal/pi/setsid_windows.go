//go:build windows

package pi

import (
	"os"
	"syscall"
)

// sessionAttr returns an empty SysProcAttr on Windows where Setsid is not
// available.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{}
}

// gracefulStop kills the child immediately; Windows has no SIGTERM.
func gracefulStop(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}

// forceKill is equivalent to gracefulStop on Windows.
func forceKill(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}
