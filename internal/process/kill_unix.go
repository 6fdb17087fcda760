//go:build !windows

// Package process terminates browser process trees.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chrome's renderer and GPU helpers down with the browser. Non-positive
// pids are ignored since -pid would then address our own group or an
// unrelated process.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort: launcher.Kill() still runs after this.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
