package earlybird

import (
	"fmt"
	"strings"
)

// ParseError is the common interface of all parse failures. Every instance
// carries a message and the input span it is localised to.
type ParseError interface {
	error
	Span() Span
}

// --- No parse ---------------------------------------------------------

// NoParseError reports that the recognizer exhausted the input (or got stuck
// before its end) without completing a parse of the start symbol.
//
// StartIndex and EndIndex both name the last column the recognizer was still
// active in. Encountered is the token found there, or nil when the input
// ended. ExpectedTerminals lists the terminals under a dot in that column;
// Expected augments them with the non-anonymous heads predicted there, with
// entries subsumed by a broader head removed.
type NoParseError struct {
	Message           string
	StartIndex        uint64
	EndIndex          uint64
	Encountered       Token
	ExpectedTerminals []string
	Expected          []string
}

func (e *NoParseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	enc := "end of input"
	if e.Encountered != nil {
		enc = fmt.Sprintf("%v", e.Encountered)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("no parse: unexpected %s at position %d", enc, e.StartIndex)
	}
	return fmt.Sprintf("no parse: unexpected %s at position %d, expected %s",
		enc, e.StartIndex, strings.Join(e.Expected, ", "))
}

// Span returns the input position the failure is localised to.
func (e *NoParseError) Span() Span {
	return Span{e.StartIndex, e.EndIndex}
}

// --- Ambiguity --------------------------------------------------------

// AmbiguousParseError is returned by ParseForest.Single when preference
// pruning leaves more than one alternative somewhere in the forest. It
// carries the alternatives of the leftmost such choice point, folded into
// partial builder values.
type AmbiguousParseError struct {
	Message      string
	StartIndex   uint64
	EndIndex     uint64
	Alternatives []interface{}
}

func (e *AmbiguousParseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("ambiguous parse: %d alternatives over input positions %d…%d",
		len(e.Alternatives), e.StartIndex, e.EndIndex)
}

// Span returns the input span of the leftmost ambiguous choice point.
func (e *AmbiguousParseError) Span() Span {
	return Span{e.StartIndex, e.EndIndex}
}

// --- Infinite parses --------------------------------------------------

// InfiniteParseError reports that the grammar derives infinitely many parse
// trees for the given input, i.e. a zero-width derivation cycle survived
// penalty and preference pruning.
type InfiniteParseError struct {
	Message    string
	StartIndex uint64
	EndIndex   uint64
}

func (e *InfiniteParseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("infinite parse: derivation cycle over input positions %d…%d",
		e.StartIndex, e.EndIndex)
}

// Span returns the input span of the cyclic derivation.
func (e *InfiniteParseError) Span() Span {
	return Span{e.StartIndex, e.EndIndex}
}
