package grammar

import (
	"fmt"

	"github.com/tokenbend/earlybird"
)

// RuleSetBuilder is a fluent helper for setting up rule sets. A typical
// construction reads almost like the grammar itself:
//
//	b := grammar.NewRuleSetBuilder()
//	b.LHS("sentence").N("noun").N("verb").N("noun").End()
//	b.LHS("noun").T("man").End()
//	b.LHS("noun").T("dog").End()
//	b.LHS("described").N("adjective").Star().Greedy().N("relative").End()
//	rules := b.RuleSet()
//
// Modifier calls (Opt, Star, Plus, Greedy, Lazy, PreferEarly, PreferLate)
// apply to the most recently added RHS symbol.
type RuleSetBuilder struct {
	rs *RuleSet
}

// NewRuleSetBuilder creates a builder with an empty rule set.
func NewRuleSetBuilder() *RuleSetBuilder {
	return &RuleSetBuilder{rs: NewRuleSet()}
}

// LHS starts a new rule with the given head.
func (b *RuleSetBuilder) LHS(head string) *RuleBuilder {
	return &RuleBuilder{b: b, head: head}
}

// RuleSet returns the rule set built so far.
func (b *RuleSetBuilder) RuleSet() *RuleSet {
	return b.rs
}

// RuleBuilder collects the right-hand side of a single rule.
type RuleBuilder struct {
	b       *RuleSetBuilder
	head    string
	rhs     []Symbol
	penalty int
}

// N appends a non-terminal symbol to the RHS.
func (rb *RuleBuilder) N(head string, mods ...Mod) *RuleBuilder {
	rb.rhs = append(rb.rhs, NonTerminal(head, mods...))
	return rb
}

// T appends a terminal symbol matching tokens equal to payload.
func (rb *RuleBuilder) T(payload interface{}, mods ...Mod) *RuleBuilder {
	rb.rhs = append(rb.rhs, Terminal(payload, mods...))
	return rb
}

// TFunc appends a terminal symbol with a client-supplied match predicate.
func (rb *RuleBuilder) TFunc(name string, matches func(earlybird.Token) bool, mods ...Mod) *RuleBuilder {
	rb.rhs = append(rb.rhs, TerminalFunc(name, matches, mods...))
	return rb
}

func (rb *RuleBuilder) modifyLast(mods ...Mod) *RuleBuilder {
	if len(rb.rhs) == 0 {
		panic(fmt.Sprintf("grammar: modifier on rule %s before any RHS symbol", rb.head))
	}
	rb.rhs[len(rb.rhs)-1] = rb.rhs[len(rb.rhs)-1].with(mods...)
	return rb
}

// Opt marks the last RHS symbol as optional.
func (rb *RuleBuilder) Opt() *RuleBuilder { return rb.modifyLast(Optional) }

// Star marks the last RHS symbol with a Kleene star.
func (rb *RuleBuilder) Star() *RuleBuilder { return rb.modifyLast(Star) }

// Plus marks the last RHS symbol with a Kleene plus.
func (rb *RuleBuilder) Plus() *RuleBuilder { return rb.modifyLast(Plus) }

// Greedy marks the last RHS symbol's quantifier as greedy.
func (rb *RuleBuilder) Greedy() *RuleBuilder { return rb.modifyLast(Greedy) }

// Lazy marks the last RHS symbol's quantifier as lazy.
func (rb *RuleBuilder) Lazy() *RuleBuilder { return rb.modifyLast(Lazy) }

// PreferEarly marks the last RHS symbol to prefer early rules.
func (rb *RuleBuilder) PreferEarly() *RuleBuilder { return rb.modifyLast(PreferEarly) }

// PreferLate marks the last RHS symbol to prefer late rules.
func (rb *RuleBuilder) PreferLate() *RuleBuilder { return rb.modifyLast(PreferLate) }

// Penalty sets the rule's penalty.
func (rb *RuleBuilder) Penalty(p int) *RuleBuilder {
	rb.penalty = p
	return rb
}

// End finishes the rule and adds it to the builder's rule set.
func (rb *RuleBuilder) End() *Rule {
	return rb.b.rs.Add(NewRule(rb.head, rb.rhs, rb.penalty))
}
