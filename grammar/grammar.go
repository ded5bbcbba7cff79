/*
Package grammar provides symbols, rules and rule sets for context-free
grammars with regex-like quantifiers.

Right-hand-side symbols may carry modifier flags: a quantifier (optional,
star or plus), a repetition preference (greedy or lazy) and, for
non-terminals, a rule-choice preference (prefer-early or prefer-late).
Quantifiers are understood natively by the Earley recognizer in package
earley; the grammar is never rewritten or normalised.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import (
	"fmt"
	"strings"

	"github.com/tokenbend/earlybird"
)

// SymKind discriminates the two built-in symbol variants.
type SymKind int8

// Symbols are either terminals or non-terminals.
const (
	TerminalKind SymKind = iota
	NonTerminalKind
)

// Flags are the modifier flags a symbol may carry.
type Flags uint8

const (
	FlagOptional Flags = 1 << iota
	FlagStar
	FlagPlus
	FlagGreedy
	FlagLazy
	FlagPreferEarly
	FlagPreferLate
)

// Symbol is an immutable grammar symbol, a tagged variant of terminal and
// non-terminal. Terminals carry a match capability; non-terminals carry the
// name of their head. Symbols are values and may be freely copied.
type Symbol struct {
	kind    SymKind
	name    string
	matcher func(earlybird.Token) bool
	flags   Flags
}

// Mod is a modifier applied to a symbol at construction time.
type Mod func(*Symbol)

// Modifiers for symbol construction. Greedy and Lazy are mutually exclusive,
// as are PreferEarly and PreferLate; at most one quantifier may be given.
// Violations are reported by panicking, as they are programming errors in
// the grammar.
var (
	Optional    Mod = func(s *Symbol) { s.flags |= FlagOptional }
	Star        Mod = func(s *Symbol) { s.flags |= FlagStar }
	Plus        Mod = func(s *Symbol) { s.flags |= FlagPlus }
	Greedy      Mod = func(s *Symbol) { s.flags |= FlagGreedy }
	Lazy        Mod = func(s *Symbol) { s.flags |= FlagLazy }
	PreferEarly Mod = func(s *Symbol) { s.flags |= FlagPreferEarly }
	PreferLate  Mod = func(s *Symbol) { s.flags |= FlagPreferLate }
)

// Terminal creates a terminal symbol matching tokens equal to payload.
// The payload doubles as the symbol's name in error messages.
func Terminal(payload interface{}, mods ...Mod) Symbol {
	return newSymbol(TerminalKind, fmt.Sprintf("%v", payload),
		func(tok earlybird.Token) bool { return tok == payload }, mods)
}

// TerminalFunc creates a terminal symbol with a client-supplied match
// predicate. The name is used for error reporting only.
func TerminalFunc(name string, matches func(earlybird.Token) bool, mods ...Mod) Symbol {
	if matches == nil {
		panic("grammar: terminal needs a match predicate, is nil")
	}
	return newSymbol(TerminalKind, name, matches, mods)
}

// NonTerminal creates a non-terminal symbol referring to rules with the
// given head.
func NonTerminal(head string, mods ...Mod) Symbol {
	return newSymbol(NonTerminalKind, head, nil, mods)
}

func newSymbol(kind SymKind, name string, matcher func(earlybird.Token) bool, mods []Mod) Symbol {
	s := Symbol{kind: kind, name: name, matcher: matcher}
	for _, mod := range mods {
		mod(&s)
	}
	s.mustValidate()
	return s
}

// with returns a copy of s with additional modifiers applied.
// Used by the rule-set builder.
func (s Symbol) with(mods ...Mod) Symbol {
	for _, mod := range mods {
		mod(&s)
	}
	s.mustValidate()
	return s
}

func (s Symbol) mustValidate() {
	quant := 0
	for _, f := range []Flags{FlagOptional, FlagStar, FlagPlus} {
		if s.flags&f != 0 {
			quant++
		}
	}
	if quant > 1 {
		panic(fmt.Sprintf("grammar: symbol %q carries more than one quantifier", s.name))
	}
	if s.flags&FlagGreedy != 0 && s.flags&FlagLazy != 0 {
		panic(fmt.Sprintf("grammar: symbol %q cannot be both greedy and lazy", s.name))
	}
	if s.flags&(FlagGreedy|FlagLazy) != 0 && quant == 0 {
		panic(fmt.Sprintf("grammar: greedy/lazy on symbol %q needs a quantifier", s.name))
	}
	if s.flags&FlagPreferEarly != 0 && s.flags&FlagPreferLate != 0 {
		panic(fmt.Sprintf("grammar: symbol %q cannot prefer both early and late rules", s.name))
	}
	if s.kind == TerminalKind && s.flags&(FlagPreferEarly|FlagPreferLate) != 0 {
		panic(fmt.Sprintf("grammar: prefer-early/late is meaningless on terminal %q", s.name))
	}
}

// Kind returns the symbol variant.
func (s Symbol) Kind() SymKind {
	return s.kind
}

// Name returns the terminal's display name or the non-terminal's head.
func (s Symbol) Name() string {
	return s.name
}

// IsTerminal returns true for terminal symbols.
func (s Symbol) IsTerminal() bool {
	return s.kind == TerminalKind
}

// Matches applies the terminal's match capability to a token.
// It returns false for non-terminals.
func (s Symbol) Matches(tok earlybird.Token) bool {
	return s.matcher != nil && s.matcher(tok)
}

// Flags returns the modifier flags of the symbol.
func (s Symbol) Flags() Flags {
	return s.flags
}

func (s Symbol) IsOptional() bool   { return s.flags&FlagOptional != 0 }
func (s Symbol) IsStar() bool       { return s.flags&FlagStar != 0 }
func (s Symbol) IsPlus() bool       { return s.flags&FlagPlus != 0 }
func (s Symbol) IsGreedy() bool     { return s.flags&FlagGreedy != 0 }
func (s Symbol) IsLazy() bool       { return s.flags&FlagLazy != 0 }
func (s Symbol) PrefersEarly() bool { return s.flags&FlagPreferEarly != 0 }
func (s Symbol) PrefersLate() bool  { return s.flags&FlagPreferLate != 0 }

// IsQuantified returns true if the symbol carries any quantifier.
func (s Symbol) IsQuantified() bool {
	return s.flags&(FlagOptional|FlagStar|FlagPlus) != 0
}

// IsNullable returns true if the symbol may match zero tokens by way of its
// quantifier, i.e. it is optional or starred.
func (s Symbol) IsNullable() bool {
	return s.flags&(FlagOptional|FlagStar) != 0
}

func (s Symbol) String() string {
	var b strings.Builder
	if s.IsTerminal() {
		fmt.Fprintf(&b, "%q", s.name)
	} else {
		b.WriteString(s.name)
	}
	switch {
	case s.IsOptional():
		b.WriteByte('?')
	case s.IsStar():
		b.WriteByte('*')
	case s.IsPlus():
		b.WriteByte('+')
	}
	if s.IsGreedy() {
		b.WriteByte('!')
	} else if s.IsLazy() {
		b.WriteString("??")
	}
	return b.String()
}

// --- Rules ------------------------------------------------------------

// Rule is a single grammar production: a head name, an ordered right-hand
// side of symbols and a non-negative penalty. Rules are immutable after
// construction and compared by identity.
type Rule struct {
	head    string
	rhs     []Symbol
	penalty int
	serial  int // insertion order within a RuleSet, used for prefer-early/late
}

// NewRule creates a rule. The rhs slice is copied; penalty must not be
// negative.
func NewRule(head string, rhs []Symbol, penalty int) *Rule {
	if penalty < 0 {
		panic(fmt.Sprintf("grammar: rule %s has negative penalty %d", head, penalty))
	}
	return &Rule{
		head:    head,
		rhs:     append([]Symbol(nil), rhs...),
		penalty: penalty,
		serial:  -1,
	}
}

// Head returns the rule's head name.
func (r *Rule) Head() string {
	return r.head
}

// RHS returns the right-hand side of the rule. Callers must not modify the
// returned slice.
func (r *Rule) RHS() []Symbol {
	return r.rhs
}

// Penalty returns the rule's penalty.
func (r *Rule) Penalty() int {
	return r.penalty
}

// Serial returns the insertion order of the rule within its RuleSet, or -1
// if the rule has not been added to a set yet.
func (r *Rule) Serial() int {
	return r.serial
}

func (r *Rule) String() string {
	parts := make([]string, len(r.rhs))
	for i, s := range r.rhs {
		parts[i] = s.String()
	}
	rhs := strings.Join(parts, " ")
	if r.penalty > 0 {
		return fmt.Sprintf("%s → %s (penalty %d)", r.head, rhs, r.penalty)
	}
	return fmt.Sprintf("%s → %s", r.head, rhs)
}
