//go:build !windows

package pi

import (
	"os"
	"syscall"
)

// sessionAttr returns SysProcAttr that places the subprocess in its own
// session, preventing it from accessing the parent's controlling terminal
// and making the whole session addressable as one process group.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// gracefulStop asks the child's session to terminate. Signalling the
// negative pid reaches the full process group, so helper processes the
// agent spawned go down with it.
func gracefulStop(p *os.Process) error {
	if p == nil {
		return nil
	}
	return syscall.Kill(-p.Pid, syscall.SIGTERM)
}

// forceKill ends the child's session unconditionally.
func forceKill(p *os.Process) error {
	if p == nil {
		return nil
	}
	return syscall.Kill(-p.Pid, syscall.SIGKILL)
}
