package iptables

import "os/exec"

// Runner executes an external command and returns its combined stdout and
// stderr. Tests substitute it to avoid touching the system firewall.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}
