package iptables

import "slices"

// Query maps listing column names to accepted values. A rule matches when,
// for every field present, its value is one of the accepted values:
// conjunction across fields, disjunction within a field. The empty query
// matches everything.
//
// For example:
//
//	Query{"chain": {"INPUT", "OUTPUT"}, "prot": {"all"}, "extra": {""}}
//
// matches rules where (chain is INPUT or OUTPUT) and prot is all and extra is
// empty.
type Query map[string][]string

// Match reports whether the rule satisfies the query. Unknown field names
// never match.
func (q Query) Match(r Rule) bool {
	for field, accepted := range q {
		val, ok := r.Field(field)
		if !ok || !slices.Contains(accepted, val) {
			return false
		}
	}
	return true
}

// Filter returns the matching subsequence of rules, preserving order. It is
// a pure function over the input slice.
func Filter(rules []Rule, q Query) []Rule {
	var matched []Rule
	for _, r := range rules {
		if q.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}
