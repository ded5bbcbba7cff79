/*
Package earlybird is the root package of an Earley-based parsing toolbox.

Earley's algorithm parses arbitrary context-free grammars, ambiguous ones
included. This module extends the classic recognizer with regex-like
quantifiers on right-hand-side symbols (optional, star, plus) and a family
of ambiguity-taming preferences (greedy/lazy repetition, prefer-early/late
rule choice, per-rule penalties). Parses are collected in a shared packed
forest which clients fold into values of their own with a builder visitor.

The root package holds the small set of types shared by all sub-packages:
input tokens, input spans, and the error taxonomy. The interesting machinery
lives in the sub-packages:

	grammar    symbols, rules and rule sets
	earley     the chart recognizer and the Parse entry point
	forest     the shared packed parse forest, pruning and builders
	scanner    convenience tokenizers for feeding the parser from text

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package earlybird

import "fmt"

// Token is an opaque input token. The parser never inspects tokens itself;
// matching is delegated to terminal symbols (see grammar.Terminal), which
// either compare by equality or apply a client-supplied predicate. Tokens
// therefore need neither equality nor hashability.
//
// Token is an alias, not a defined type, so client code handing over plain
// interface{} values or predicates needs no conversions.
type Token = interface{}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input tokens. For every
// terminal and non-terminal, a parse forest will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
