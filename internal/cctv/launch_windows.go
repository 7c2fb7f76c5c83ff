//go:build windows

package cctv

import "os/exec"

// launchElevated goes through Start-Process so Windows shows the UAC prompt
// when the assistant itself is not elevated.
func launchElevated(path string) error {
	return exec.Command("powershell", "-NoProfile", "-Command",
		"Start-Process", "-FilePath", "'"+path+"'", "-Verb", "RunAs").Start()
}
