// Package iptables models, parses, queries and mutates the rule set of the
// system firewall through the iptables command-line tool. It tracks the
// INPUT, OUTPUT and FORWARD chains of the filter table only.
package iptables

import "slices"

// listingArgs is the fixed listing invocation whose output ParseListing
// understands.
var listingArgs = []string{"-n", "-L", "-v", "-x", "--line-numbers"}

// Manager owns a point-in-time snapshot of the firewall rules. Load is the
// only way to obtain one; the snapshot is never updated in place, reload to
// observe external changes. A Manager is safe to share across goroutines.
type Manager struct {
	gate  *Gate
	rules []Rule
}

// Load lists the current rules through the gate, parses them and returns a
// Manager holding the snapshot.
func Load(gate *Gate) (*Manager, error) {
	out, err := gate.Exec(listingArgs...)
	if err != nil {
		return nil, err
	}
	rules, err := ParseListing(out)
	if err != nil {
		return nil, err
	}
	return &Manager{gate: gate, rules: rules}, nil
}

// Rules returns a copy of the snapshot, in listing order.
func (m *Manager) Rules() []Rule {
	return slices.Clone(m.rules)
}

// Find returns the snapshot rules matching the query, preserving order.
func (m *Manager) Find(q Query) []Rule {
	return Filter(m.rules, q)
}

// Insert installs the rule at the head of its chain. The snapshot is not
// refreshed; call Load again to observe the change.
func (m *Manager) Insert(r Rule) (string, error) {
	return m.modify(OpInsert, r)
}

// Delete removes the first rule matching the given one. The snapshot is not
// refreshed; call Load again to observe the change.
func (m *Manager) Delete(r Rule) (string, error) {
	return m.modify(OpDelete, r)
}

func (m *Manager) modify(op Op, r Rule) (string, error) {
	return Apply(m.gate, op, r)
}

// Apply builds the command for the rule and runs it through the gate. It
// does not need a loaded snapshot; Manager.Insert and Manager.Delete are the
// usual entry points.
func Apply(gate *Gate, op Op, r Rule) (string, error) {
	args, err := ruleCommand(op, r)
	if err != nil {
		return "", err
	}
	return gate.Exec(args...)
}
