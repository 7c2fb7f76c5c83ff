//go:build !windows

package cctv

import (
	"os"
	"os/exec"
)

func launchElevated(path string) error {
	var cmd *exec.Cmd
	if os.Geteuid() == 0 {
		cmd = exec.Command(path)
	} else {
		cmd = exec.Command("pkexec", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
