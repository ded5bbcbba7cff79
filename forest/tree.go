package forest

import (
	"github.com/tokenbend/earlybird"
	"github.com/tokenbend/earlybird/grammar"
)

// Tree is the default parse tree shape. Children holds one entry per RHS
// symbol of the rule: a token for a matched terminal, a *Tree for a matched
// non-terminal, nil for a skipped optional, and a []interface{} of
// tokens/sub-trees for a star/plus symbol.
//
// Clients that want a different shape altogether supply their own Builder
// to ParseForest.Apply instead.
type Tree struct {
	Rule     *grammar.Rule
	Children []interface{}
}

// Unparse concatenates the terminal-leaf tokens of a tree in left-to-right
// order, recovering the input span the tree covers.
func Unparse(t *Tree) []earlybird.Token {
	return unparseInto(nil, t)
}

func unparseInto(toks []earlybird.Token, t *Tree) []earlybird.Token {
	for _, child := range t.Children {
		toks = unparseChild(toks, child)
	}
	return toks
}

func unparseChild(toks []earlybird.Token, child interface{}) []earlybird.Token {
	switch c := child.(type) {
	case nil:
		// skipped optional
	case *Tree:
		toks = unparseInto(toks, c)
	case []interface{}:
		for _, el := range c {
			toks = unparseChild(toks, el)
		}
	default:
		toks = append(toks, c)
	}
	return toks
}

// --- Tree builder -----------------------------------------------------

// TreeBuilder folds the forest into the default Tree shape. On an
// ambiguity its Merge keeps the first alternative; use ParseForest.Single
// to have ambiguities reported instead, or ListOf to collect all of them.
type TreeBuilder struct{}

var _ Builder = TreeBuilder{}

func (TreeBuilder) StartRule(ctx RuleCtxt) interface{} {
	return &Tree{Rule: ctx.Rule}
}

func (TreeBuilder) Terminal(ctx RuleCtxt, tok earlybird.Token) interface{} {
	return tok
}

func (TreeBuilder) SkipOptional(ctx RuleCtxt, prev interface{}) interface{} {
	return appendChild(prev.(*Tree), nil)
}

func (TreeBuilder) BeginMultiple(ctx RuleCtxt, prev interface{}) interface{} {
	return appendChild(prev.(*Tree), []interface{}{})
}

func (TreeBuilder) EndMultiple(ctx RuleCtxt, prev interface{}) interface{} {
	return prev
}

func (TreeBuilder) Extend(ctx RuleCtxt, prev, extension interface{}) interface{} {
	t := prev.(*Tree)
	sym := ctx.Rule.RHS()[ctx.SymbolIndex]
	if sym.IsStar() || sym.IsPlus() {
		return extendGroup(t, extension)
	}
	return appendChild(t, extension)
}

func (TreeBuilder) Merge(ctx RuleCtxt, values []interface{}) interface{} {
	return values[0]
}

// appendChild returns a fresh tree with one more child; trees are shared
// across forest paths and must never be mutated in place.
func appendChild(t *Tree, child interface{}) *Tree {
	children := make([]interface{}, len(t.Children)+1)
	copy(children, t.Children)
	children[len(t.Children)] = child
	return &Tree{Rule: t.Rule, Children: children}
}

// extendGroup returns a fresh tree whose last child, the open star/plus
// group, has one more element.
func extendGroup(t *Tree, el interface{}) *Tree {
	n := len(t.Children)
	group := t.Children[n-1].([]interface{})
	ng := make([]interface{}, len(group)+1)
	copy(ng, group)
	ng[len(group)] = el
	children := make([]interface{}, n)
	copy(children, t.Children[:n-1])
	children[n-1] = ng
	return &Tree{Rule: t.Rule, Children: children}
}

// --- Counting builder -------------------------------------------------

// countBuilder counts parse trees without building them: leaves count one,
// Extend multiplies, merges add.
type countBuilder struct{}

var _ Builder = countBuilder{}

func (countBuilder) StartRule(RuleCtxt) interface{}                 { return 1 }
func (countBuilder) Terminal(RuleCtxt, earlybird.Token) interface{} { return 1 }
func (countBuilder) SkipOptional(_ RuleCtxt, prev interface{}) interface{} {
	return prev
}
func (countBuilder) BeginMultiple(_ RuleCtxt, prev interface{}) interface{} {
	return prev
}
func (countBuilder) EndMultiple(_ RuleCtxt, prev interface{}) interface{} {
	return prev
}
func (countBuilder) Extend(_ RuleCtxt, prev, extension interface{}) interface{} {
	return prev.(int) * extension.(int)
}
func (countBuilder) Merge(_ RuleCtxt, values []interface{}) interface{} {
	sum := 0
	for _, v := range values {
		sum += v.(int)
	}
	return sum
}

// --- Lifting a builder over ambiguity ---------------------------------

// ListOf lifts an ambiguity-free builder into one that returns the list of
// its values over every parse: leaves become singleton lists, Extend takes
// the cross product, merges concatenate. The lifted values are
// []interface{} of the inner builder's values.
func ListOf(inner Builder) Builder {
	return listBuilder{inner: inner}
}

type listBuilder struct {
	inner Builder
}

func (l listBuilder) StartRule(ctx RuleCtxt) interface{} {
	return []interface{}{l.inner.StartRule(ctx)}
}

func (l listBuilder) Terminal(ctx RuleCtxt, tok earlybird.Token) interface{} {
	return []interface{}{l.inner.Terminal(ctx, tok)}
}

func (l listBuilder) SkipOptional(ctx RuleCtxt, prev interface{}) interface{} {
	return l.lift(prev, func(v interface{}) interface{} { return l.inner.SkipOptional(ctx, v) })
}

func (l listBuilder) BeginMultiple(ctx RuleCtxt, prev interface{}) interface{} {
	return l.lift(prev, func(v interface{}) interface{} { return l.inner.BeginMultiple(ctx, v) })
}

func (l listBuilder) EndMultiple(ctx RuleCtxt, prev interface{}) interface{} {
	return l.lift(prev, func(v interface{}) interface{} { return l.inner.EndMultiple(ctx, v) })
}

func (l listBuilder) Extend(ctx RuleCtxt, prev, extension interface{}) interface{} {
	ps := prev.([]interface{})
	es := extension.([]interface{})
	out := make([]interface{}, 0, len(ps)*len(es))
	for _, p := range ps {
		for _, e := range es {
			out = append(out, l.inner.Extend(ctx, p, e))
		}
	}
	return out
}

func (l listBuilder) Merge(ctx RuleCtxt, values []interface{}) interface{} {
	var out []interface{}
	for _, v := range values {
		out = append(out, v.([]interface{})...)
	}
	return out
}

func (l listBuilder) lift(prev interface{}, f func(interface{}) interface{}) interface{} {
	ps := prev.([]interface{})
	out := make([]interface{}, len(ps))
	for i, p := range ps {
		out[i] = f(p)
	}
	return out
}
