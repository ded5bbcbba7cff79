/*
Package forest implements a shared packed parse forest.

A packed parse forest re-uses existing parse tree nodes between different
parse trees. For a conventional non-ambiguous parse, a parse forest degrades
to a single tree. Ambiguous grammars, on the other hand, may result in parse
runs where more than one parse tree is created; to save space these parse
trees share common nodes. A discussion of the underlying AND-OR-graph may be
found in "Parsing Techniques" by Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/), Section 3.7.3.

The forest alternates two node kinds. An OrNode stands for "some parse of
head H over input span (x…y)" and fans out to its alternatives. An AndNode
is one such alternative: a concrete rule application whose children line up
with the rule's RHS symbols: a token for a matched terminal, a node
reference for a non-terminal, a none-marker for a skipped optional, and an
ordered group for the matches of a star/plus symbol.

Nodes are content-addressable: OrNodes by (head, span), AndNodes by
(rule, span, signature of the child sequence). Re-adding existing content
yields the existing node, which is what makes the forest shared and what
lets builder folds memoise one value per node (see walk.go).

On top of the raw graph the package implements the three ambiguity-taming
layers (penalties, greedy/lazy repetition, prefer-early/late rule choice;
see prune.go), the detection of infinite parses (cycle.go), and the builder
protocol with the default parse tree type (walk.go, tree.go).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package forest

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"

	"github.com/tokenbend/earlybird"
	"github.com/tokenbend/earlybird/grammar"
)

// tracer traces with key 'earlybird.forest'.
func tracer() tracing.Trace {
	return tracing.Select("earlybird.forest")
}

// --- Child edges ------------------------------------------------------

// EdgeKind discriminates the kinds of AndNode children.
type EdgeKind uint8

const (
	EdgeToken EdgeKind = iota // a matched terminal
	EdgeNode                  // a matched non-terminal
	EdgeNone                  // a skipped optional
	EdgeGroup                 // the matches of a star/plus symbol, in order
)

// ChildEdge is one child of an AndNode, lining up with one RHS symbol of
// the node's rule.
type ChildEdge struct {
	Kind       EdgeKind
	TokenIndex int             // for EdgeToken
	Token      earlybird.Token // for EdgeToken
	Node       *OrNode         // for EdgeNode
	Group      []ChildEdge     // for EdgeGroup; token and node edges only
}

// TokenEdge creates a child edge for a matched terminal.
func TokenEdge(index int, tok earlybird.Token) ChildEdge {
	return ChildEdge{Kind: EdgeToken, TokenIndex: index, Token: tok}
}

// NodeEdge creates a child edge referencing a non-terminal node.
func NodeEdge(n *OrNode) ChildEdge {
	return ChildEdge{Kind: EdgeNode, Node: n}
}

// NoneEdge creates the marker edge for a skipped optional.
func NoneEdge() ChildEdge {
	return ChildEdge{Kind: EdgeNone}
}

// GroupEdge creates a child edge for a (possibly empty) star/plus run.
func GroupEdge(elems []ChildEdge) ChildEdge {
	return ChildEdge{Kind: EdgeGroup, Group: elems}
}

// matchCount returns how many matches of the RHS symbol this edge
// represents. It is the quantity greedy and lazy preferences compare.
func (e ChildEdge) matchCount() int {
	switch e.Kind {
	case EdgeNone:
		return 0
	case EdgeGroup:
		return len(e.Group)
	}
	return 1
}

// width returns the number of input tokens the edge covers.
func (e ChildEdge) width() uint64 {
	switch e.Kind {
	case EdgeToken:
		return 1
	case EdgeNode:
		return e.Node.span.Len()
	case EdgeGroup:
		var w uint64
		for _, el := range e.Group {
			w += el.width()
		}
		return w
	}
	return 0
}

// --- Nodes ------------------------------------------------------------

// AndNode is one concrete way to match a rule over an input span. Children
// line up with the rule's RHS symbols.
type AndNode struct {
	Rule     *grammar.Rule
	Children []ChildEdge
	span     earlybird.Span
	penalty  int // memoised minimum total penalty; set by Prune
}

// Span returns the input span the rule application covers.
func (a *AndNode) Span() earlybird.Span {
	return a.span
}

// MinPenalty returns the minimum total penalty of any tree below this
// alternative. Valid after the forest has been pruned.
func (a *AndNode) MinPenalty() int {
	return a.penalty
}

func (a *AndNode) String() string {
	return fmt.Sprintf("[%s %s]", a.Rule.Head(), a.span)
}

// OrNode is the ambiguity layer for a head over an input span: every
// alternative below it is one way the head matches that span.
type OrNode struct {
	id       int
	head     string
	span     earlybird.Span
	alts     []*AndNode
	altSigs  map[string]bool
	survived []*AndNode // penalty/greedy survivors; set by Prune
	penalty  int        // memoised minimum penalty; set by Prune
}

// Head returns the non-terminal head the node stands for.
func (n *OrNode) Head() string {
	return n.head
}

// Span returns the input span the node covers.
func (n *OrNode) Span() earlybird.Span {
	return n.span
}

// Alternatives returns all alternatives of the node, pruned or not.
func (n *OrNode) Alternatives() []*AndNode {
	return n.alts
}

// MinPenalty returns the minimum total penalty of any tree below this node.
// Valid after the forest has been pruned.
func (n *OrNode) MinPenalty() int {
	return n.penalty
}

func (n *OrNode) String() string {
	return fmt.Sprintf("%s %s", n.head, n.span)
}

// --- Forest -----------------------------------------------------------

type orKey struct {
	head       string
	start, end uint64
}

// Forest is the arena holding all nodes of a parse. Nodes are interned on
// creation; clients get sharing for free.
type Forest struct {
	nodes  []*OrNode
	byKey  map[orKey]*OrNode
	root   *OrNode
	pruned bool
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{byKey: make(map[orKey]*OrNode)}
}

// OrNode interns the node for (head, start…end). The second return value
// tells whether the node was created by this call; a fresh node has no
// alternatives yet.
func (f *Forest) OrNode(head string, start, end uint64) (*OrNode, bool) {
	k := orKey{head: head, start: start, end: end}
	if n, ok := f.byKey[k]; ok {
		return n, false
	}
	n := &OrNode{
		id:      len(f.nodes),
		head:    head,
		span:    earlybird.Span{start, end},
		altSigs: make(map[string]bool),
	}
	f.nodes = append(f.nodes, n)
	f.byKey[k] = n
	return n, true
}

// AddAlternative adds one rule application below an OrNode, interned by the
// rule and the signature of its child sequence. The children must line up
// with the rule's RHS, one edge per symbol.
func (f *Forest) AddAlternative(n *OrNode, rule *grammar.Rule, children []ChildEdge) *AndNode {
	if len(children) != len(rule.RHS()) {
		panic(fmt.Sprintf("forest: alternative for %s has %d children for %d RHS symbols",
			rule, len(children), len(rule.RHS())))
	}
	sig := fmt.Sprintf("%p/%s", rule, Signature(children))
	if n.altSigs[sig] {
		return nil
	}
	n.altSigs[sig] = true
	tracer().Debugf("add alternative %v below %v", rule, n)
	a := &AndNode{Rule: rule, Children: children, span: n.span}
	n.alts = append(n.alts, a)
	return a
}

// SetRoot marks the root node of the forest.
func (f *Forest) SetRoot(n *OrNode) {
	f.root = n
}

// Root returns the root node of the forest.
func (f *Forest) Root() *OrNode {
	return f.root
}

// --- Signatures -------------------------------------------------------

// To intern AndNodes we need identity of every child (including grouping
// structure), not just of the covered span. Following Grune & Jacobs we
// encode the child sequence into a signature; node references contribute
// their arena id, which is stable for the lifetime of the forest.
type edgeSig struct {
	Kind int
	Tok  int
	Node int
	Sub  []edgeSig
}

func sigOf(edges []ChildEdge) []edgeSig {
	sigs := make([]edgeSig, len(edges))
	for i, e := range edges {
		sigs[i] = edgeSig{Kind: int(e.Kind), Tok: -1, Node: -1}
		switch e.Kind {
		case EdgeToken:
			sigs[i].Tok = e.TokenIndex
		case EdgeNode:
			sigs[i].Node = e.Node.id
		case EdgeGroup:
			sigs[i].Sub = sigOf(e.Group)
		}
	}
	return sigs
}

// Signature returns a content hash over a child sequence, suitable for
// deduplicating alternatives.
func Signature(edges []ChildEdge) string {
	h, err := structhash.Hash(struct {
		Edges []edgeSig
	}{Edges: sigOf(edges)}, 1)
	if err != nil { // no reason for this to happen, but the API demands it
		panic(err)
	}
	return h
}
