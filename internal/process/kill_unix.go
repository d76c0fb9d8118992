//go:build !windows

package process

import "syscall"

// KillGroup sends SIGKILL to the process group led by pid, taking the
// browser's renderer and GPU children with it. Non-positive pids are
// ignored: kill(-0) would signal our own group.
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs first.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
