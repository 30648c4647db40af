package iptables

import (
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/alephnull/rfw/pkg/logger"
)

// DefaultPath is used when no explicit iptables path is configured.
const DefaultPath = "iptables"

// Gate funnels every iptables invocation through one mutex. Listing output
// and rule positions are only meaningful when no mutation interleaves, so
// at most one external command runs at a time for this process.
//
// A list-then-modify sequence in application code is still two separate
// critical sections; callers needing that to be atomic must serialize it
// themselves.
type Gate struct {
	mu     sync.Mutex
	path   string
	runner Runner
	logger logger.Logger
}

// NewGate builds a gate around the iptables binary at path, or DefaultPath
// when path is empty.
func NewGate(path string, log logger.Logger) *Gate {
	if path == "" {
		path = DefaultPath
	}
	return &Gate{
		path:   path,
		runner: execRunner{},
		logger: log.With(logger.String("component", "iptables")),
	}
}

// SetRunner replaces the command runner. For tests.
func (g *Gate) SetRunner(r Runner) { g.runner = r }

// Path returns the configured iptables binary path.
func (g *Gate) Path() string { return g.path }

// Exec runs iptables with the given arguments under the gate lock and
// returns the combined output. On nonzero exit the failure is logged with
// full context and returned as an *ExecError.
//
// No timeout is applied: a hung iptables process blocks the lock, and every
// caller behind it, indefinitely.
func (g *Gate) Exec(args ...string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cmd := append([]string{g.path}, args...)
	g.logger.Debug("exec", logger.String("cmd", strings.Join(cmd, " ")))

	out, err := g.runner.Run(g.path, args...)
	if err != nil {
		execErr := &ExecError{
			Cmd:      cmd,
			ExitCode: exitCode(err),
			Output:   string(out),
			Err:      err,
		}
		g.logger.Error("iptables command failed",
			logger.String("cmd", strings.Join(cmd, " ")),
			logger.Int("exit_code", execErr.ExitCode),
			logger.String("output", execErr.Output),
		)
		return "", execErr
	}

	if len(out) > 0 {
		g.logger.Debug("exec output", logger.String("output", string(out)))
	}
	return string(out), nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// VerifyInstalled checks that the configured binary exists and runs. Run it
// once at startup before relying on the gate.
func (g *Gate) VerifyInstalled() error {
	if _, err := g.Exec("--version"); err != nil {
		return &InstallError{Path: g.path, Err: err}
	}
	return nil
}

// VerifyPermission checks that the caller may list rules, i.e. is root or
// has the needed capability. Run it once at startup after VerifyInstalled.
func (g *Gate) VerifyPermission() error {
	if _, err := g.Exec("-n", "-L", string(ChainOutput)); err != nil {
		return &PermissionError{Path: g.path, Err: err}
	}
	return nil
}

// VerifyOriginal would check that the configured path resolves to the stock
// iptables binary rather than a substitute. Not implemented; callers must
// mitigate that trust gap themselves.
//
// TODO: compare the resolved binary against a known-good fingerprint.
func (g *Gate) VerifyOriginal() error {
	return nil
}
