/*
Package earley provides an Earley-parser for grammars with regex-like
quantifiers.

Earley's algorithm for parsing ambiguous grammars has been known since 1968.
A very accessible and practical discussion has been done by Loup Vaillant
in a superb blog series (http://loup-vaillant.fr/tutorials/earley-parsing/).
A thorough introduction may be found in "Parsing Techniques" by Dick Grune
and Ceriel J.H. Jacobs (https://dickgrune.com/Books/PTAPG_2nd_Edition/),
section 7.2.

This parser extends the classic recognizer in two directions:

Quantifiers. RHS symbols may be optional, starred or plussed. The dot of an
item does not jump straight past such a symbol but advances through a small
sub-state machine (see quantState), so the grammar is used exactly as
written, with no pre-expansion into helper rules.

Provenance. Every item records the set of derivations that produced it
(predicted, scanned, completed, skipped). After a successful recognition the
derivations are factored into a shared packed parse forest (package forest),
which in turn supports penalty/greedy/prefer disambiguation and builder
folds.

The parser consumes a sequence of opaque tokens; matching tokens against
terminals is entirely the grammar's business. Use package scanner for
convenience tokenizers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/tokenbend/earlybird"
	"github.com/tokenbend/earlybird/forest"
	"github.com/tokenbend/earlybird/grammar"
)

// tracer traces with key 'earlybird.chart'.
func tracer() tracing.Trace {
	return tracing.Select("earlybird.chart")
}

// Parser is an Earley-parser. Create one with NewParser, or use the
// package-level Parse for one-shot parsing.
//
// A Parser is good for one input sequence at a time; the chart of the last
// run is retained until the next one starts. The returned parse forest and
// errors do not refer to the chart: they hold their own nodes, tokens and
// values.
type Parser struct {
	rules   grammar.Rules
	start   string
	tokens  []earlybird.Token
	columns []*column
}

// NewParser creates a parser for a fixed set of rules. The rules must not
// be mutated while the parser uses them.
func NewParser(rules grammar.Rules) *Parser {
	return &Parser{rules: rules}
}

// Parse runs the parser over an input token sequence and returns the parse
// forest of all derivations of the start head, already pruned by penalties
// and preferences.
//
// Failures are reported as *earlybird.NoParseError (the input is not in the
// grammar's language) or *earlybird.InfiniteParseError (the grammar derives
// infinitely many trees for this input).
func (p *Parser) Parse(start string, tokens []earlybird.Token) (*forest.ParseForest, error) {
	if !p.recognize(start, tokens) {
		return nil, p.noParse()
	}
	return p.buildForest()
}

// Recognize runs the recognizer only and reports whether the input is in
// the language of the start head. No forest is built.
func (p *Parser) Recognize(start string, tokens []earlybird.Token) bool {
	return p.recognize(start, tokens)
}

// Parse is a one-shot convenience: it parses tokens against the start head
// of the given rules.
func Parse(rules grammar.Rules, start string, tokens []earlybird.Token) (*forest.ParseForest, error) {
	return NewParser(rules).Parse(start, tokens)
}

// --- Recognizer -------------------------------------------------------

// The recognizer builds N+1 state sets ("columns") for N input tokens.
// Column i holds the items alive after consuming tokens [0, i). Within a
// column, prediction, completion and quantifier skips run to fixpoint; the
// work-list behaviour of iteratable.Set takes care of items added while the
// column is being processed.
func (p *Parser) recognize(start string, tokens []earlybird.Token) bool {
	p.start = start
	p.tokens = tokens
	n := len(tokens)
	p.columns = make([]*column, n+1)
	for i := range p.columns {
		p.columns[i] = newColumn(uint64(i))
	}
	for _, r := range p.rules.RulesFor(start) {
		p.columns[0].insert(r, 0, qBefore, 0, derivation{kind: derivPredicted})
	}
	for i := 0; i <= n; i++ {
		p.processColumn(i)
		dumpColumn(p.columns, uint64(i))
	}
	return p.acceptingItem() != nil
}

// processColumn drains the column's work-list, applying the predictor, the
// completer and quantifier skips in place, and the scanner towards the next
// column.
func (p *Parser) processColumn(i int) {
	col := p.columns[i]
	col.items.IterateOnce()
	for col.items.Next() {
		it := col.items.Item().(*item)
		if it.completed() {
			p.complete(it)
			continue
		}
		sym, _ := it.symbol()
		if it.q == qBefore && sym.IsNullable() {
			p.skip(it, sym)
		}
		if sym.IsTerminal() {
			p.scan(it, sym, i)
		} else {
			p.predict(it, sym)
		}
	}
}

// Predictor:
// If [A→…●B…, j] is in Si, add [B→●α, i] to Si for all rules B→α.
// Zero-width completions of B that already happened in Si are replayed
// against the new item, so late arrivals do not miss them.
func (p *Parser) predict(it *item, sym grammar.Symbol) {
	col := p.columns[it.col]
	head := sym.Name()
	for _, r := range p.rules.RulesFor(head) {
		col.insert(r, 0, qBefore, col.index, derivation{kind: derivPredicted, prev: it})
	}
	col.items.Copy().Subset(func(el interface{}) bool {
		child := el.(*item)
		return child.completed() && child.origin == col.index && child.rule.Head() == head
	}).Each(func(el interface{}) {
		child := el.(*item)
		p.advance(it, col, derivation{kind: derivCompleted, prev: it, child: child}, true)
	})
}

// Scanner:
// If [A→…●a…, j] is in Si and a matches token i, add the advanced item
// to Si+1.
func (p *Parser) scan(it *item, sym grammar.Symbol, i int) {
	if i >= len(p.tokens) || !sym.Matches(p.tokens[i]) {
		return
	}
	p.advance(it, p.columns[i+1], derivation{kind: derivScanned, prev: it, tok: i}, false)
}

// Quantifier skip:
// If the symbol under the dot is optional or starred and unmatched so far,
// the dot may move past it in place.
func (p *Parser) skip(it *item, sym grammar.Symbol) {
	col := p.columns[it.col]
	col.insert(it.rule, it.dot+1, qBefore, it.origin, derivation{kind: derivSkipped, prev: it})
}

// Completer:
// If [B→…●, j] is in Si, advance every [A→…●B…, k] from Sj into Si.
// The quantifier state of the consuming item always permits another match:
// qBefore has not matched yet, qInside belongs to a star/plus.
func (p *Parser) complete(it *item) {
	head := it.rule.Head()
	cur := p.columns[it.col]
	zero := it.origin == it.col
	p.columns[it.origin].items.Copy().Subset(func(el interface{}) bool {
		parent := el.(*item)
		sym, ok := parent.symbol()
		return ok && !sym.IsTerminal() && sym.Name() == head
	}).Each(func(el interface{}) {
		parent := el.(*item)
		p.advance(parent, cur, derivation{kind: derivCompleted, prev: parent, child: it}, zero)
	})
}

// advance moves an item's dot after one match of the symbol under it. For
// star/plus symbols the dot both stays on the symbol (ready for another
// match) and moves past it; for all other symbols it only moves on.
//
// A zero-width match never re-enters a star/plus: arbitrarily many empty
// iterations would recognize the same input as a single one while deriving
// infinitely many distinct items.
func (p *Parser) advance(prev *item, target *column, d derivation, zeroWidth bool) {
	sym := prev.rule.RHS()[prev.dot]
	if (sym.IsStar() || sym.IsPlus()) && !zeroWidth {
		target.insert(prev.rule, prev.dot, qInside, prev.origin, d)
	}
	target.insert(prev.rule, prev.dot+1, qBefore, prev.origin, d)
}

// acceptingItem returns a completed start-head item spanning the whole
// input, or nil.
func (p *Parser) acceptingItem() *item {
	last := p.columns[len(p.columns)-1]
	match := last.items.FirstMatch(func(el interface{}) bool {
		it := el.(*item)
		return it.completed() && it.origin == 0 && it.rule.Head() == p.start
	})
	if match == nil {
		return nil
	}
	return match.(*item)
}
