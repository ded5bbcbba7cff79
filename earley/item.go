package earley

import (
	"fmt"
	"strings"

	"github.com/tokenbend/earlybird/grammar"
	"github.com/tokenbend/earlybird/iteratable"
)

// Quantifier sub-state of the symbol under the dot. Instead of jumping
// straight past a symbol, the dot advances through a small state machine,
// which is how optional/star/plus are recognized without rewriting the
// grammar:
//
//	plain symbol:  before → (match) → next symbol
//	optional:      before → (match | skip) → next symbol
//	star:          before → (skip → next) | (match → inside | next);
//	               inside → (match → inside | next)
//	plus:          like star, but without the skip transition
//
// Only before and inside are materialized as item states; "past" coincides
// with the dot having moved to the next symbol.
type quantState uint8

const (
	qBefore quantState = iota // no match of the dot symbol consumed yet
	qInside                   // one or more matches of a star/plus symbol consumed
)

// Provenance kinds of an item.
type derivKind uint8

const (
	derivPredicted derivKind = iota // fresh start item for a predicted non-terminal
	derivScanned                    // consumed one token against a terminal
	derivCompleted                  // completed a non-terminal child
	derivSkipped                    // skipped a nullable quantifier in place
)

// derivation records why an item exists. Items accumulate derivations as a
// set; the forest builder later factors them into concrete parse
// alternatives.
type derivation struct {
	kind  derivKind
	prev  *item // the item this one was advanced from; predictor for derivPredicted
	child *item // the completed child, for derivCompleted
	tok   int   // consumed token index, for derivScanned
}

// item is a partial parse: a rule, a dot position into its RHS, the chart
// column the rule application started at, and the quantifier sub-state of
// the symbol under the dot. Items are interned per column by
// (rule, dot, quant state, origin).
type item struct {
	rule   *grammar.Rule
	dot    int
	q      quantState
	origin uint64 // column this rule application started at
	col    uint64 // column this item lives in
	derivs []derivation
}

type itemKey struct {
	rule   *grammar.Rule
	dot    int
	q      quantState
	origin uint64
}

// completed reports whether the dot has passed the last RHS symbol.
func (it *item) completed() bool {
	return it.dot == len(it.rule.RHS())
}

// symbol returns the symbol under the dot.
func (it *item) symbol() (grammar.Symbol, bool) {
	if it.completed() {
		return grammar.Symbol{}, false
	}
	return it.rule.RHS()[it.dot], true
}

// addDerivation records a derivation, deduplicated by structural identity of
// its parents.
func (it *item) addDerivation(d derivation) {
	for _, have := range it.derivs {
		if have == d {
			return
		}
	}
	it.derivs = append(it.derivs, d)
}

func (it *item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s →", it.rule.Head())
	for i, sym := range it.rule.RHS() {
		if i == it.dot {
			b.WriteString(" ●")
			if it.q == qInside {
				b.WriteString("↻")
			}
		}
		b.WriteString(" ")
		b.WriteString(sym.String())
	}
	if it.completed() {
		b.WriteString(" ●")
	}
	fmt.Fprintf(&b, ", %d]", it.origin)
	return b.String()
}

// --- Chart columns ----------------------------------------------------

// column is one Earley state set: the items alive after consuming the first
// `index` input tokens. The iteratable set doubles as the work-list of the
// predict/scan/complete fixpoint.
type column struct {
	index uint64
	items *iteratable.Set
	byKey map[itemKey]*item
}

func newColumn(index uint64) *column {
	return &column{
		index: index,
		items: iteratable.NewSet(0),
		byKey: make(map[itemKey]*item),
	}
}

// insert adds an item to the column, or merges the derivation into an
// already present one.
func (c *column) insert(rule *grammar.Rule, dot int, q quantState, origin uint64, d derivation) *item {
	k := itemKey{rule: rule, dot: dot, q: q, origin: origin}
	it, ok := c.byKey[k]
	if !ok {
		it = &item{rule: rule, dot: dot, q: q, origin: origin, col: c.index}
		c.byKey[k] = it
		c.items.Add(it)
	}
	it.addDerivation(d)
	return it
}
