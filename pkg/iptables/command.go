package iptables

import "strings"

// Op is a rule modifier accepted by the external tool.
type Op string

const (
	OpInsert Op = "-I" // insert at the head of the chain
	OpDelete Op = "-D" // delete the first matching rule
)

// CommandArgs renders the rule as iptables command arguments, e.g.
//
//	["INPUT", "-p", "tcp", "--dport", "7373", "-j", "ACCEPT"]
//
// The rule is assumed to come from a trusted snapshot; only the chain is
// validated. Extra is translated on a best-effort basis: dpt:/spt: tokens
// become --dport/--sport and every other match-extension token is dropped,
// so a parsed rule with other extras does not round-trip to an equivalent
// command. Known limitation.
func (r Rule) CommandArgs() ([]string, error) {
	if !r.Chain.Valid() {
		return nil, &ValidationError{Field: "chain", Value: string(r.Chain)}
	}

	args := []string{string(r.Chain)}

	if r.Protocol != "" && r.Protocol != ProtocolAll {
		args = append(args, "-p", r.Protocol)
	}

	for _, token := range strings.Fields(r.Extra) {
		if port, ok := strings.CutPrefix(token, "dpt:"); ok {
			args = append(args, "--dport", port)
		}
		if port, ok := strings.CutPrefix(token, "spt:"); ok {
			args = append(args, "--sport", port)
		}
	}

	if r.Destination != "" && r.Destination != AnyAddress {
		args = append(args, "-d", r.Destination)
	}
	if r.Source != "" && r.Source != AnyAddress {
		args = append(args, "-s", r.Source)
	}

	return append(args, "-j", string(r.Target)), nil
}

// ruleCommand prepends the insert/delete modifier to the rule's argument
// list. Any other modifier is rejected.
func ruleCommand(op Op, r Rule) ([]string, error) {
	if op != OpInsert && op != OpDelete {
		return nil, &ValidationError{Field: "modifier", Value: string(op)}
	}
	args, err := r.CommandArgs()
	if err != nil {
		return nil, err
	}
	return append([]string{string(op)}, args...), nil
}
