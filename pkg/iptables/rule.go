package iptables

import (
	"fmt"
	"strconv"
	"strings"
)

type Chain string

const (
	ChainInput   Chain = "INPUT"
	ChainOutput  Chain = "OUTPUT"
	ChainForward Chain = "FORWARD"
)

// Chains are the chains tracked by the listing parser; rules in any other
// chain are ignored.
var Chains = []Chain{ChainInput, ChainOutput, ChainForward}

func (c Chain) Valid() bool {
	switch c {
	case ChainInput, ChainOutput, ChainForward:
		return true
	}
	return false
}

type Target string

const (
	TargetAccept Target = "ACCEPT"
	TargetDrop   Target = "DROP"
	TargetReject Target = "REJECT"
)

// Wildcard values as iptables prints them in listings.
const (
	ProtocolAll    = "all"
	AnyAddress     = "0.0.0.0/0"
	AnyInterface   = "*"
	DefaultOptions = "--"
)

// Rule is a single line of iptables listing output, or a candidate rule to
// install or remove. It is a plain value; copy it freely and treat copies as
// read-only.
//
// Position, Packets and Bytes are runtime state reported by the kernel and do
// not identify the rule. Equal ignores them.
type Rule struct {
	Chain        Chain
	Position     int // 1-based ordinal within the chain, 0 when not installed
	Packets      uint64
	Bytes        uint64
	Target       Target
	Protocol     string
	Options      string
	InInterface  string
	OutInterface string
	Source       string
	Destination  string
	Extra        string
}

// ruleColumns are the column names accepted by RuleFromFields and Field,
// matching the listing header with chain prepended and extra appended.
var ruleColumns = []string{"chain", "num", "pkts", "bytes", "target", "prot", "opt", "in", "out", "source", "destination", "extra"}

// RuleFromColumns builds a Rule from the chain-prefixed column list produced
// by the listing parser: chain, num, pkts, bytes, target, prot, opt, in, out,
// source, destination, extra — in that order.
func RuleFromColumns(cols []string) (Rule, error) {
	if len(cols) != len(ruleColumns) {
		return Rule{}, fmt.Errorf("rule needs %d columns, got %d", len(ruleColumns), len(cols))
	}

	position, err := strconv.Atoi(cols[1])
	if err != nil {
		return Rule{}, fmt.Errorf("rule position %q is not a number: %w", cols[1], err)
	}
	packets, err := strconv.ParseUint(cols[2], 10, 64)
	if err != nil {
		return Rule{}, fmt.Errorf("packet counter %q is not a number: %w", cols[2], err)
	}
	bytes, err := strconv.ParseUint(cols[3], 10, 64)
	if err != nil {
		return Rule{}, fmt.Errorf("byte counter %q is not a number: %w", cols[3], err)
	}

	return Rule{
		Chain:        Chain(cols[0]),
		Position:     position,
		Packets:      packets,
		Bytes:        bytes,
		Target:       Target(cols[4]),
		Protocol:     cols[5],
		Options:      cols[6],
		InInterface:  cols[7],
		OutInterface: cols[8],
		Source:       cols[9],
		Destination:  cols[10],
		Extra:        cols[11],
	}, nil
}

// RuleFromFields builds a candidate Rule from a column-name-to-value map.
// Missing fields fall back to the listing wildcards (prot "all", opt "--",
// interfaces "*", addresses "0.0.0.0/0", empty extra). Unknown keys are
// rejected.
func RuleFromFields(fields map[string]string) (Rule, error) {
	merged := map[string]string{
		"chain":       "",
		"num":         "0",
		"pkts":        "0",
		"bytes":       "0",
		"target":      "",
		"prot":        ProtocolAll,
		"opt":         DefaultOptions,
		"in":          AnyInterface,
		"out":         AnyInterface,
		"source":      AnyAddress,
		"destination": AnyAddress,
		"extra":       "",
	}
	for k, v := range fields {
		if _, ok := merged[k]; !ok {
			return Rule{}, fmt.Errorf("unknown rule field %q", k)
		}
		merged[k] = v
	}

	cols := make([]string, 0, len(ruleColumns))
	for _, name := range ruleColumns {
		cols = append(cols, merged[name])
	}
	return RuleFromColumns(cols)
}

// Equal reports whether two rules describe the same intent. Position and the
// packet/byte counters are volatile and excluded from the comparison.
func (r Rule) Equal(other Rule) bool {
	return r.Chain == other.Chain &&
		r.Target == other.Target &&
		r.Protocol == other.Protocol &&
		r.Options == other.Options &&
		r.InInterface == other.InInterface &&
		r.OutInterface == other.OutInterface &&
		r.Source == other.Source &&
		r.Destination == other.Destination
}

// Field returns the rule's value for a listing column name, as used in
// queries. The second result is false for unknown names.
func (r Rule) Field(name string) (string, bool) {
	switch name {
	case "chain":
		return string(r.Chain), true
	case "num":
		return strconv.Itoa(r.Position), true
	case "pkts":
		return strconv.FormatUint(r.Packets, 10), true
	case "bytes":
		return strconv.FormatUint(r.Bytes, 10), true
	case "target":
		return string(r.Target), true
	case "prot":
		return r.Protocol, true
	case "opt":
		return r.Options, true
	case "in":
		return r.InInterface, true
	case "out":
		return r.OutInterface, true
	case "source":
		return r.Source, true
	case "destination":
		return r.Destination, true
	case "extra":
		return r.Extra, true
	}
	return "", false
}

func (r Rule) String() string {
	parts := []string{fmt.Sprintf("chain=%s", r.Chain)}

	if r.Position != 0 {
		parts = append(parts, fmt.Sprintf("num=%d", r.Position))
	}
	if r.Protocol != "" && r.Protocol != ProtocolAll {
		parts = append(parts, fmt.Sprintf("prot=%s", r.Protocol))
	}
	if r.InInterface != "" && r.InInterface != AnyInterface {
		parts = append(parts, fmt.Sprintf("in=%s", r.InInterface))
	}
	if r.OutInterface != "" && r.OutInterface != AnyInterface {
		parts = append(parts, fmt.Sprintf("out=%s", r.OutInterface))
	}
	if r.Source != "" && r.Source != AnyAddress {
		parts = append(parts, fmt.Sprintf("src=%s", r.Source))
	}
	if r.Destination != "" && r.Destination != AnyAddress {
		parts = append(parts, fmt.Sprintf("dst=%s", r.Destination))
	}
	parts = append(parts, fmt.Sprintf("target=%s", r.Target))
	if r.Extra != "" {
		parts = append(parts, fmt.Sprintf("extra=%q", r.Extra))
	}

	return strings.Join(parts, " ")
}
