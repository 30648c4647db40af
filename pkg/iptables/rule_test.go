package iptables_test

import (
	"strings"
	"testing"

	"github.com/alephnull/rfw/pkg/iptables"
)

func TestRuleFromColumns(t *testing.T) {
	cols := []string{"INPUT", "1", "100", "250000", "ACCEPT", "tcp", "--", "*", "*", "0.0.0.0/0", "0.0.0.0/0", "tcp dpt:22"}

	rule, err := iptables.RuleFromColumns(cols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rule.Chain != iptables.ChainInput {
		t.Errorf("chain = %q, want INPUT", rule.Chain)
	}
	if rule.Position != 1 {
		t.Errorf("position = %d, want 1", rule.Position)
	}
	if rule.Packets != 100 || rule.Bytes != 250000 {
		t.Errorf("counters = %d/%d, want 100/250000", rule.Packets, rule.Bytes)
	}
	if rule.Target != iptables.TargetAccept {
		t.Errorf("target = %q, want ACCEPT", rule.Target)
	}
	if rule.Extra != "tcp dpt:22" {
		t.Errorf("extra = %q, want %q", rule.Extra, "tcp dpt:22")
	}
}

func TestRuleFromColumns_WrongShape(t *testing.T) {
	tests := []struct {
		name string
		cols []string
	}{
		{"too few columns", []string{"INPUT", "1", "2"}},
		{"non-numeric position", []string{"INPUT", "one", "0", "0", "ACCEPT", "all", "--", "*", "*", "0.0.0.0/0", "0.0.0.0/0", ""}},
		{"non-numeric counter", []string{"INPUT", "1", "x", "0", "ACCEPT", "all", "--", "*", "*", "0.0.0.0/0", "0.0.0.0/0", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := iptables.RuleFromColumns(tt.cols); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRuleFromFields_Defaults(t *testing.T) {
	rule, err := iptables.RuleFromFields(map[string]string{
		"chain":  "INPUT",
		"target": "DROP",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rule.Protocol != iptables.ProtocolAll {
		t.Errorf("protocol = %q, want %q", rule.Protocol, iptables.ProtocolAll)
	}
	if rule.Options != iptables.DefaultOptions {
		t.Errorf("options = %q, want %q", rule.Options, iptables.DefaultOptions)
	}
	if rule.InInterface != iptables.AnyInterface || rule.OutInterface != iptables.AnyInterface {
		t.Errorf("interfaces = %q/%q, want wildcards", rule.InInterface, rule.OutInterface)
	}
	if rule.Source != iptables.AnyAddress || rule.Destination != iptables.AnyAddress {
		t.Errorf("addresses = %q/%q, want %q", rule.Source, rule.Destination, iptables.AnyAddress)
	}
	if rule.Extra != "" {
		t.Errorf("extra = %q, want empty", rule.Extra)
	}
	if rule.Position != 0 {
		t.Errorf("position = %d, want 0 for uninstalled rule", rule.Position)
	}
}

func TestRuleFromFields_UnknownKey(t *testing.T) {
	_, err := iptables.RuleFromFields(map[string]string{
		"chain":    "INPUT",
		"target":   "ACCEPT",
		"priority": "7",
	})
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if !strings.Contains(err.Error(), "priority") {
		t.Errorf("error %q should name the offending field", err)
	}
}

func TestRuleEqual_IgnoresVolatileFields(t *testing.T) {
	base := iptables.Rule{
		Chain:        iptables.ChainInput,
		Position:     1,
		Packets:      100,
		Bytes:        9999,
		Target:       iptables.TargetAccept,
		Protocol:     "tcp",
		Options:      "--",
		InInterface:  "*",
		OutInterface: "*",
		Source:       "0.0.0.0/0",
		Destination:  "0.0.0.0/0",
	}

	other := base
	other.Position = 42
	other.Packets = 0
	other.Bytes = 0

	if !base.Equal(other) {
		t.Error("rules differing only in position and counters must compare equal")
	}
}

func TestRuleEqual_ComparesIntentFields(t *testing.T) {
	base := iptables.Rule{
		Chain:        iptables.ChainInput,
		Target:       iptables.TargetAccept,
		Protocol:     "tcp",
		Options:      "--",
		InInterface:  "*",
		OutInterface: "*",
		Source:       "0.0.0.0/0",
		Destination:  "0.0.0.0/0",
	}

	tests := []struct {
		name   string
		mutate func(*iptables.Rule)
	}{
		{"chain", func(r *iptables.Rule) { r.Chain = iptables.ChainOutput }},
		{"target", func(r *iptables.Rule) { r.Target = iptables.TargetDrop }},
		{"protocol", func(r *iptables.Rule) { r.Protocol = "udp" }},
		{"options", func(r *iptables.Rule) { r.Options = "-f" }},
		{"in interface", func(r *iptables.Rule) { r.InInterface = "eth0" }},
		{"out interface", func(r *iptables.Rule) { r.OutInterface = "eth1" }},
		{"source", func(r *iptables.Rule) { r.Source = "10.0.0.0/8" }},
		{"destination", func(r *iptables.Rule) { r.Destination = "192.0.2.1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			if base.Equal(other) {
				t.Errorf("rules differing in %s must compare unequal", tt.name)
			}
		})
	}
}

func TestRuleField(t *testing.T) {
	rule := iptables.Rule{
		Chain:    iptables.ChainForward,
		Position: 3,
		Protocol: "udp",
		Extra:    "udp dpt:53",
	}

	if v, ok := rule.Field("chain"); !ok || v != "FORWARD" {
		t.Errorf("Field(chain) = %q, %v", v, ok)
	}
	if v, ok := rule.Field("num"); !ok || v != "3" {
		t.Errorf("Field(num) = %q, %v", v, ok)
	}
	if v, ok := rule.Field("extra"); !ok || v != "udp dpt:53" {
		t.Errorf("Field(extra) = %q, %v", v, ok)
	}
	if _, ok := rule.Field("nonsense"); ok {
		t.Error("Field must report unknown names")
	}
}
