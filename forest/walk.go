package forest

import (
	"github.com/tokenbend/earlybird"
	"github.com/tokenbend/earlybird/grammar"
)

// A Builder folds the parse forest into client values without ever
// materialising every tree. For each alternative the dispatcher walks the
// rule's RHS left to right and fires:
//
//   - StartRule once, then per symbol position
//   - Terminal followed by Extend for a matched terminal,
//   - a recursive descent followed by Extend for a matched non-terminal,
//   - SkipOptional for a skipped optional,
//   - BeginMultiple, one Extend per occurrence, and EndMultiple for the
//     matches of a star/plus symbol.
//
// The value of the alternative is the value of the last call. Where an
// OrNode keeps several alternatives after pruning, their values are
// combined with Merge, or with MergeVertical/MergeHorizontal if the
// builder implements the optional upgrade interfaces: vertical for
// alternatives applying different rules of the same head, horizontal for
// alternatives of one rule that factor its children differently.
//
// Builders must treat prev and extension values as immutable and return
// fresh values; the dispatcher memoises one value per node and reuses it
// across every tree that shares the node.
type Builder interface {
	StartRule(ctx RuleCtxt) interface{}
	Terminal(ctx RuleCtxt, tok earlybird.Token) interface{}
	SkipOptional(ctx RuleCtxt, prev interface{}) interface{}
	BeginMultiple(ctx RuleCtxt, prev interface{}) interface{}
	EndMultiple(ctx RuleCtxt, prev interface{}) interface{}
	Extend(ctx RuleCtxt, prev, extension interface{}) interface{}
	Merge(ctx RuleCtxt, values []interface{}) interface{}
}

// VerticalMerger is an optional Builder upgrade: MergeVertical combines
// alternatives that apply different rules. Builders not implementing it
// fall back to Merge.
type VerticalMerger interface {
	MergeVertical(ctx RuleCtxt, values []interface{}) interface{}
}

// HorizontalMerger is an optional Builder upgrade: MergeHorizontal combines
// alternatives of a single rule that factor its children differently.
// Builders not implementing it fall back to Merge.
type HorizontalMerger interface {
	MergeHorizontal(ctx RuleCtxt, values []interface{}) interface{}
}

// RuleCtxt tells a builder callback where in the parse it is firing.
type RuleCtxt struct {
	Rule        *grammar.Rule // nil for merges
	SymbolIndex int           // RHS position, -1 for StartRule and merges
	Span        earlybird.Span
}

// --- Dispatcher -------------------------------------------------------

type valueKey struct {
	node *OrNode
	pref prefMode
}

type walker struct {
	f    *Forest
	b    Builder
	memo map[valueKey]interface{}
}

func newWalker(f *Forest, b Builder) *walker {
	return &walker{f: f, b: b, memo: make(map[valueKey]interface{})}
}

// valueOf computes (or recalls) the builder value of an OrNode under a
// call-site preference.
func (w *walker) valueOf(n *OrNode, pref prefMode) interface{} {
	k := valueKey{node: n, pref: pref}
	if v, ok := w.memo[k]; ok {
		return v
	}
	alts := n.survivorsFor(pref)
	var v interface{}
	if len(alts) == 1 {
		v = w.fold(alts[0])
	} else {
		vals := make([]interface{}, len(alts))
		for i, a := range alts {
			vals[i] = w.fold(a)
		}
		v = w.merge(n, alts, vals)
	}
	w.memo[k] = v
	return v
}

func (w *walker) merge(n *OrNode, alts []*AndNode, vals []interface{}) interface{} {
	ctx := RuleCtxt{SymbolIndex: -1, Span: n.span}
	sameRule := true
	for _, a := range alts[1:] {
		if a.Rule != alts[0].Rule {
			sameRule = false
			break
		}
	}
	if sameRule {
		if hm, ok := w.b.(HorizontalMerger); ok {
			return hm.MergeHorizontal(ctx, vals)
		}
	} else if vm, ok := w.b.(VerticalMerger); ok {
		return vm.MergeVertical(ctx, vals)
	}
	return w.b.Merge(ctx, vals)
}

// fold dispatches the builder protocol over one alternative.
func (w *walker) fold(a *AndNode) interface{} {
	rhs := a.Rule.RHS()
	ctx := RuleCtxt{Rule: a.Rule, SymbolIndex: -1, Span: a.span}
	v := w.b.StartRule(ctx)
	pos := a.span.From()
	for k, edge := range a.Children {
		ctx.SymbolIndex = k
		switch edge.Kind {
		case EdgeToken:
			c := ctx
			c.Span = earlybird.Span{pos, pos + 1}
			v = w.b.Extend(c, v, w.b.Terminal(c, edge.Token))
			pos++
		case EdgeNode:
			c := ctx
			c.Span = edge.Node.span
			v = w.b.Extend(c, v, w.valueOf(edge.Node, prefOf(rhs[k])))
			pos = edge.Node.span.To()
		case EdgeNone:
			c := ctx
			c.Span = earlybird.Span{pos, pos}
			v = w.b.SkipOptional(c, v)
		case EdgeGroup:
			c := ctx
			c.Span = earlybird.Span{pos, pos + edge.width()}
			v = w.b.BeginMultiple(c, v)
			for _, el := range edge.Group {
				ec := ctx
				switch el.Kind {
				case EdgeToken:
					ec.Span = earlybird.Span{pos, pos + 1}
					v = w.b.Extend(ec, v, w.b.Terminal(ec, el.Token))
					pos++
				case EdgeNode:
					ec.Span = el.Node.span
					v = w.b.Extend(ec, v, w.valueOf(el.Node, prefOf(rhs[k])))
					pos = el.Node.span.To()
				}
			}
			v = w.b.EndMultiple(c, v)
		}
	}
	return v
}
