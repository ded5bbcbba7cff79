package forest

import (
	"fmt"

	"github.com/tokenbend/earlybird"
)

// ParseForest is the handle to a completed parse: the root node for the
// start head over the whole input, inside its pruned forest. It is created
// by the parser; all methods are read-only and a forest may be folded any
// number of times.
type ParseForest struct {
	f      *Forest
	tokens []earlybird.Token
}

// NewParseForest wraps a pruned forest and the tokens it was parsed from.
// Clients receive ParseForests from earley.Parse and have no reason to call
// this themselves.
func NewParseForest(f *Forest, tokens []earlybird.Token) *ParseForest {
	return &ParseForest{f: f, tokens: tokens}
}

// Forest exposes the underlying node graph.
func (pf *ParseForest) Forest() *Forest {
	return pf.f
}

// Tokens returns the input the forest was parsed from.
func (pf *ParseForest) Tokens() []earlybird.Token {
	return pf.tokens
}

// Apply folds the forest with a client builder and returns the root value.
// Every shared node is folded once; its value is reused wherever the node
// is referenced.
func (pf *ParseForest) Apply(b Builder) interface{} {
	return newWalker(pf.f, b).valueOf(pf.f.root, prefNone)
}

// Count returns the number of parse trees in the forest (after pruning)
// without materialising them.
func (pf *ParseForest) Count() int {
	return pf.Apply(countBuilder{}).(int)
}

// Single returns the unique parse tree. If pruning left an ambiguity
// anywhere in the forest, a *earlybird.AmbiguousParseError localised to the
// leftmost ambiguous choice point is returned instead.
func (pf *ParseForest) Single() (*Tree, error) {
	if node, pref := pf.leftmostAmbiguity(); node != nil {
		w := newWalker(pf.f, TreeBuilder{})
		alts := node.survivorsFor(pref)
		vals := make([]interface{}, len(alts))
		for i, a := range alts {
			vals[i] = w.fold(a)
		}
		return nil, &earlybird.AmbiguousParseError{
			Message: fmt.Sprintf("ambiguous parse: %d ways to read %s over input positions %d…%d",
				len(alts), node.head, node.span.From(), node.span.To()),
			StartIndex:   node.span.From(),
			EndIndex:     node.span.To(),
			Alternatives: vals,
		}
	}
	return pf.Apply(TreeBuilder{}).(*Tree), nil
}

// All returns every parse tree of the forest. Sub-structures are shared
// between the returned trees; treat them as immutable.
func (pf *ParseForest) All() []*Tree {
	vals := pf.Apply(ListOf(TreeBuilder{})).([]interface{})
	trees := make([]*Tree, len(vals))
	for i, v := range vals {
		trees[i] = v.(*Tree)
	}
	return trees
}

// TreeSeq is a lazy sequence of parse trees. Calling it yields the next
// tree and the rest of the sequence; a nil tree signals exhaustion.
type TreeSeq func() (*Tree, TreeSeq)

// Iter returns the parse trees of the forest as a lazy sequence. Trees are
// decoded one at a time, so consuming a prefix of a large forest does not
// pay for the rest.
func (pf *ParseForest) Iter() TreeSeq {
	e := &enumerator{f: pf.f, counts: make(map[valueKey]int)}
	total := e.countOf(pf.f.root, prefNone)
	var seqFrom func(i int) TreeSeq
	seqFrom = func(i int) TreeSeq {
		var seq TreeSeq
		seq = func() (*Tree, TreeSeq) {
			if i >= total {
				return nil, seq
			}
			return e.nthOf(pf.f.root, prefNone, i), seqFrom(i + 1)
		}
		return seq
	}
	return seqFrom(0)
}

// --- Ambiguity scan ---------------------------------------------------

// leftmostAmbiguity returns the reachable OrNode (with its call-site
// preference) that keeps more than one alternative after pruning and
// starts leftmost in the input, or nil.
func (pf *ParseForest) leftmostAmbiguity() (*OrNode, prefMode) {
	var hit *OrNode
	var hitPref prefMode
	seen := make(map[cycleVertex]bool)
	var visit func(v cycleVertex)
	visit = func(v cycleVertex) {
		if seen[v] {
			return
		}
		seen[v] = true
		if len(v.node.survivorsFor(v.pref)) > 1 {
			if hit == nil || v.node.span.From() < hit.span.From() ||
				(v.node.span.From() == hit.span.From() && v.node.span.To() < hit.span.To()) {
				hit = v.node
				hitPref = v.pref
			}
		}
		pf.f.eachChildVertex(v, visit)
	}
	visit(cycleVertex{node: pf.f.root, pref: prefNone})
	return hit, hitPref
}

// --- Ranked enumeration -----------------------------------------------

// The lazy iterator ranks trees lexicographically over the forest's choice
// points: alternatives of an OrNode in insertion order, leftmost child
// choices most significant. Tree i is then decodable from the per-node
// tree counts alone, without enumerating trees 0…i-1.
type enumerator struct {
	f      *Forest
	counts map[valueKey]int
}

func (e *enumerator) countOf(n *OrNode, pref prefMode) int {
	k := valueKey{node: n, pref: pref}
	if c, ok := e.counts[k]; ok {
		return c
	}
	sum := 0
	for _, a := range n.survivorsFor(pref) {
		sum += e.altCount(a)
	}
	e.counts[k] = sum
	return sum
}

func (e *enumerator) altCount(a *AndNode) int {
	rhs := a.Rule.RHS()
	prod := 1
	for k, edge := range a.Children {
		pref := prefOf(rhs[k])
		switch edge.Kind {
		case EdgeNode:
			prod *= e.countOf(edge.Node, pref)
		case EdgeGroup:
			for _, el := range edge.Group {
				if el.Kind == EdgeNode {
					prod *= e.countOf(el.Node, pref)
				}
			}
		}
	}
	return prod
}

func (e *enumerator) nthOf(n *OrNode, pref prefMode, idx int) *Tree {
	for _, a := range n.survivorsFor(pref) {
		c := e.altCount(a)
		if idx < c {
			return e.nthAlt(a, idx)
		}
		idx -= c
	}
	panic("forest: tree index out of range")
}

// nthAlt decodes one tree of an alternative by mixed-radix decomposition of
// idx over the child counts, leftmost digit most significant.
func (e *enumerator) nthAlt(a *AndNode, idx int) *Tree {
	// place value per choice point, right to left
	type choice struct {
		node *OrNode
		pref prefMode
		idx  int
	}
	var choices []choice
	eachNodeChild(a, func(n *OrNode, pref prefMode) {
		choices = append(choices, choice{node: n, pref: pref})
	})
	for i := len(choices) - 1; i >= 0; i-- {
		c := e.countOf(choices[i].node, choices[i].pref)
		choices[i].idx = idx % c
		idx /= c
	}
	// fold the alternative, feeding the decoded choices in order
	next := 0
	t := &Tree{Rule: a.Rule}
	for _, edge := range a.Children {
		switch edge.Kind {
		case EdgeToken:
			t = appendChild(t, edge.Token)
		case EdgeNode:
			ch := choices[next]
			next++
			t = appendChild(t, e.nthOf(ch.node, ch.pref, ch.idx))
		case EdgeNone:
			t = appendChild(t, nil)
		case EdgeGroup:
			group := make([]interface{}, len(edge.Group))
			for i, el := range edge.Group {
				if el.Kind == EdgeToken {
					group[i] = el.Token
				} else {
					ch := choices[next]
					next++
					group[i] = e.nthOf(ch.node, ch.pref, ch.idx)
				}
			}
			t = appendChild(t, group)
		}
	}
	return t
}

// eachNodeChild enumerates the OrNode children of an alternative in
// left-to-right order, groups flattened.
func eachNodeChild(a *AndNode, visit func(*OrNode, prefMode)) {
	rhs := a.Rule.RHS()
	for k, edge := range a.Children {
		pref := prefOf(rhs[k])
		switch edge.Kind {
		case EdgeNode:
			visit(edge.Node, pref)
		case EdgeGroup:
			for _, el := range edge.Group {
				if el.Kind == EdgeNode {
					visit(el.Node, pref)
				}
			}
		}
	}
}
