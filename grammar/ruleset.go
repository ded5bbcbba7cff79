package grammar

import (
	"fmt"
	"strings"
)

// AnonPrefix marks head names that are hidden from error reporting by the
// default RuleSet. Heads starting with this prefix are typically generated
// by client-side grammar sugar rather than written by hand.
const AnonPrefix = "%"

// Rules is the lookup capability the parser needs from a grammar. The
// default implementation is RuleSet; clients may substitute their own, e.g.
// to synthesise rules on demand or to change which heads count as anonymous.
type Rules interface {
	// RulesFor returns the rules with the given head, in insertion order.
	RulesFor(head string) []*Rule
	// IsAnonymous reports whether a head should be hidden from the
	// expected-symbol listing of a NoParseError.
	IsAnonymous(head string) bool
}

// RuleSet is the default Rules implementation: a mapping from head name to
// the ordered list of rules for that head. Insertion order is preserved
// across the whole set; it drives the prefer-early/late tie-breaks.
//
// A RuleSet must not be mutated while a parse is running.
type RuleSet struct {
	byHead map[string][]*Rule
	count  int
}

var _ Rules = (*RuleSet)(nil)

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{byHead: make(map[string][]*Rule)}
}

// Add inserts a rule into the set and stamps it with its insertion serial.
// A rule can belong to one set only; adding it twice panics.
func (rs *RuleSet) Add(r *Rule) *Rule {
	if r == nil {
		panic("grammar: cannot add nil rule to rule set")
	}
	if r.serial >= 0 {
		panic(fmt.Sprintf("grammar: rule %s already belongs to a rule set", r))
	}
	r.serial = rs.count
	rs.count++
	rs.byHead[r.head] = append(rs.byHead[r.head], r)
	return r
}

// RulesFor returns the rules for a head in insertion order. Callers must not
// modify the returned slice.
func (rs *RuleSet) RulesFor(head string) []*Rule {
	return rs.byHead[head]
}

// IsAnonymous reports heads with the AnonPrefix as anonymous.
func (rs *RuleSet) IsAnonymous(head string) bool {
	return strings.HasPrefix(head, AnonPrefix)
}

// Size returns the number of rules in the set.
func (rs *RuleSet) Size() int {
	return rs.count
}

// EachRule calls f for every rule in the set, in insertion order.
func (rs *RuleSet) EachRule(f func(*Rule)) {
	rules := make([]*Rule, rs.count)
	for _, rr := range rs.byHead {
		for _, r := range rr {
			rules[r.serial] = r
		}
	}
	for _, r := range rules {
		f(r)
	}
}
