package iptables_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/alephnull/rfw/pkg/iptables"
)

func TestCommandArgs_PortExtras(t *testing.T) {
	rule := iptables.Rule{
		Chain:       iptables.ChainInput,
		Target:      iptables.TargetAccept,
		Protocol:    "tcp",
		Source:      "0.0.0.0/0",
		Destination: "0.0.0.0/0",
		Extra:       "tcp dpt:7373 spt:34543",
	}

	args, err := rule.CommandArgs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"INPUT", "-p", "tcp", "--dport", "7373", "--sport", "34543", "-j", "ACCEPT"}
	if !slices.Equal(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestCommandArgs_WildcardAddressesOmitted(t *testing.T) {
	rule := iptables.Rule{
		Chain:       iptables.ChainOutput,
		Target:      iptables.TargetDrop,
		Protocol:    "all",
		Source:      "0.0.0.0/0",
		Destination: "0.0.0.0/0",
	}

	args, err := rule.CommandArgs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"OUTPUT", "-j", "DROP"}
	if !slices.Equal(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestCommandArgs_Addresses(t *testing.T) {
	rule := iptables.Rule{
		Chain:       iptables.ChainForward,
		Target:      iptables.TargetReject,
		Protocol:    "all",
		Source:      "10.0.0.0/8",
		Destination: "192.0.2.7",
	}

	args, err := rule.CommandArgs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"FORWARD", "-d", "192.0.2.7", "-s", "10.0.0.0/8", "-j", "REJECT"}
	if !slices.Equal(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestCommandArgs_UnsupportedChain(t *testing.T) {
	tests := []string{"PREROUTING", "DOCKER", "", "input"}

	for _, chain := range tests {
		t.Run("chain "+chain, func(t *testing.T) {
			rule := iptables.Rule{
				Chain:  iptables.Chain(chain),
				Target: iptables.TargetAccept,
			}

			_, err := rule.CommandArgs()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var valErr *iptables.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestCommandArgs_OtherExtrasDropped(t *testing.T) {
	// The extra translator only understands port matches; everything else
	// is dropped, so this round trip is lossy on purpose.
	rule := iptables.Rule{
		Chain:    iptables.ChainInput,
		Target:   iptables.TargetAccept,
		Protocol: "tcp",
		Extra:    "tcp dpt:80 state NEW,ESTABLISHED",
	}

	args, err := rule.CommandArgs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"INPUT", "-p", "tcp", "--dport", "80", "-j", "ACCEPT"}
	if !slices.Equal(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}
