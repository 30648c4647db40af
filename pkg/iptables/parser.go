package iptables

import (
	"regexp"
	"slices"
	"strings"
)

// listingHeader is the exact column sequence printed by
// `iptables -n -L -v -x --line-numbers`. Anything else means the output
// format changed in a way we cannot trust.
var listingHeader = []string{"num", "pkts", "bytes", "target", "prot", "opt", "in", "out", "source", "destination"}

var chainLine = regexp.MustCompile(`^Chain (\w+) `)

// ParseListing converts raw listing output into rules, in listing order.
//
// Chains separate with blank lines; a `Chain NAME ...` line opens a chain
// context and a blank line closes it. Only the INPUT, OUTPUT and FORWARD
// chains are tracked, so rules of user-defined chains are dropped. Within a
// context, any line whose first token is numeric is a rule: ten positional
// columns plus a free-text remainder that becomes Extra.
func ParseListing(out string) ([]Rule, error) {
	var rules []Rule
	var chain Chain

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			chain = ""
			continue
		}

		if m := chainLine.FindStringSubmatch(line); m != nil && Chain(m[1]).Valid() {
			chain = Chain(m[1])
			continue
		}

		if strings.Contains(line, "source") && strings.Contains(line, "destination") {
			if !slices.Equal(strings.Fields(line), listingHeader) {
				return nil, &ParseError{Line: line, Msg: "unexpected listing header"}
			}
			continue
		}

		if chain == "" {
			continue
		}

		cols := strings.Fields(line)
		if !allDigits(cols[0]) {
			continue
		}
		if len(cols) < len(listingHeader) {
			return nil, &ParseError{Line: line, Msg: "rule line has too few columns"}
		}

		full := make([]string, 0, len(ruleColumns))
		full = append(full, string(chain))
		full = append(full, cols[:len(listingHeader)]...)
		full = append(full, strings.Join(cols[len(listingHeader):], " "))

		rule, err := RuleFromColumns(full)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
