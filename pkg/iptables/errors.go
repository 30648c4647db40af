package iptables

import (
	"fmt"
	"strings"
)

// InstallError means the iptables binary could not be run at all: wrong path
// or not installed.
type InstallError struct {
	Path string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("could not run %q, check that iptables is installed and the path is correct: %v", e.Path, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// PermissionError means iptables is present but the caller lacks the
// privilege to list or modify rules.
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("no sufficient permission to run %q, you must be root: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// ParseError means the listing output does not have the expected shape,
// either because the iptables output format changed or because the output is
// corrupted.
type ParseError struct {
	Line string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("cannot parse iptables listing: %s", e.Msg)
	}
	return fmt.Sprintf("cannot parse iptables listing: %s: %q", e.Msg, e.Line)
}

// ValidationError means a rule or modifier handed to the command builder has
// a value it cannot translate.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unsupported rule %s %q", e.Field, e.Value)
}

// ExecError carries the full context of a failed iptables invocation.
type ExecError struct {
	Cmd      []string
	ExitCode int
	Output   string
	Err      error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command %q exited with code %d: %s", strings.Join(e.Cmd, " "), e.ExitCode, strings.TrimSpace(e.Output))
}

func (e *ExecError) Unwrap() error { return e.Err }
