//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillGroup kills pid and its children with taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs first.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
