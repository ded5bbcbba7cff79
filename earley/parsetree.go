package earley

/*
Building a parse forest from Earley items is well trodden ground; a good
overview may be found in "Parsing Techniques" by Dick Grune and Ceriel
J.H. Jacobs (https://dickgrune.com/Books/PTAPG_2nd_Edition/), Section
7.2.1.2, and in Loup Vaillant's tutorial
(http://loup-vaillant.fr/tutorials/earley-parsing/parser).

This parser takes the direct route: every item carries the set of
derivations that created it, so instead of searching the chart backwards
for plausible predecessors we replay the recorded derivation chains. A
chain for a completed item threads backwards through its rule, one
scanned/completed/skipped step per advance, until it reaches the rule's
start item. Walking it forwards again yields the child sequence of one
parse alternative; different chains through the same item yield the
alternatives of its ambiguity.

Chains through quantified symbols need one extra bit of bookkeeping: while
an item sits inside a star/plus (quantifier state qInside), its child
sequence ends with a still-open match group, which subsequent stay-steps
extend and the eventual advance past the symbol closes.
*/

import (
	"github.com/tokenbend/earlybird"
	"github.com/tokenbend/earlybird/forest"
)

// childSeq is the child edge sequence of one derivation chain, one edge
// per RHS position the dot has passed (for items inside a star/plus, the
// last edge is the open match group).
type childSeq []forest.ChildEdge

type forestBuilder struct {
	p    *Parser
	f    *forest.Forest
	seqs map[*item][]childSeq
}

// buildForest converts the completed chart into a pruned parse forest and
// classifies infinite parses. Only called after a successful recognition.
func (p *Parser) buildForest() (*forest.ParseForest, error) {
	fb := &forestBuilder{
		p:    p,
		f:    forest.NewForest(),
		seqs: make(map[*item][]childSeq),
	}
	root := fb.orNode(p.start, 0, uint64(len(p.tokens)))
	fb.f.SetRoot(root)
	fb.f.Prune()
	if cyclic := fb.f.InfiniteCycle(); cyclic != nil {
		tracer().Infof("grammar derives %v from itself over %v", cyclic.Head(), cyclic.Span())
		return nil, &earlybird.InfiniteParseError{
			StartIndex: cyclic.Span().From(),
			EndIndex:   cyclic.Span().To(),
		}
	}
	return forest.NewParseForest(fb.f, p.tokens), nil
}

// orNode interns the forest node for (head, start…end) and, on first
// encounter, fills in one alternative per distinct derivation chain of the
// completed items matching it. Interning before filling keeps recursive
// references (a head deriving itself over the same span) from looping.
func (fb *forestBuilder) orNode(head string, start, end uint64) *forest.OrNode {
	node, fresh := fb.f.OrNode(head, start, end)
	if !fresh {
		return node
	}
	col := fb.p.columns[end]
	for _, el := range col.items.Values() {
		it := el.(*item)
		if !it.completed() || it.origin != start || it.rule.Head() != head {
			continue
		}
		for _, seq := range fb.seqsFor(it) {
			fb.f.AddAlternative(node, it.rule, seq)
		}
	}
	return node
}

// seqsFor enumerates the distinct child sequences of the derivation chains
// reaching an item. Chains share their prefixes, so results are memoised
// per item; sequences that factor identically (e.g. via two completions of
// the same head over the same span) collapse by signature.
func (fb *forestBuilder) seqsFor(it *item) []childSeq {
	if seqs, ok := fb.seqs[it]; ok {
		return seqs
	}
	if it.dot == 0 && it.q == qBefore {
		seqs := []childSeq{nil}
		fb.seqs[it] = seqs
		return seqs
	}
	var out []childSeq
	seen := make(map[string]bool)
	for _, d := range it.derivs {
		switch d.kind {
		case derivPredicted:
			continue
		case derivSkipped:
			edge := forest.NoneEdge()
			if it.rule.RHS()[it.dot-1].IsStar() {
				edge = forest.GroupEdge(nil)
			}
			for _, prev := range fb.seqsFor(d.prev) {
				out = appendSeq(out, seen, append(cloneSeq(prev), edge))
			}
		case derivScanned, derivCompleted:
			var elem forest.ChildEdge
			if d.kind == derivScanned {
				elem = forest.TokenEdge(d.tok, fb.p.tokens[d.tok])
			} else {
				child := d.child
				elem = forest.NodeEdge(fb.orNode(child.rule.Head(), child.origin, child.col))
			}
			sym := it.rule.RHS()[d.prev.dot]
			for _, prev := range fb.seqsFor(d.prev) {
				seq := cloneSeq(prev)
				if sym.IsStar() || sym.IsPlus() {
					if d.prev.q == qInside {
						last := seq[len(seq)-1]
						group := append(append([]forest.ChildEdge(nil), last.Group...), elem)
						seq[len(seq)-1] = forest.GroupEdge(group)
					} else {
						seq = append(seq, forest.GroupEdge([]forest.ChildEdge{elem}))
					}
				} else {
					seq = append(seq, elem)
				}
				out = appendSeq(out, seen, seq)
			}
		}
	}
	fb.seqs[it] = out
	if len(out) == 0 {
		tracer().Errorf("no derivation chain reaches %s, chart is inconsistent", it)
	}
	return out
}

func cloneSeq(seq childSeq) childSeq {
	return append(childSeq(nil), seq...)
}

func appendSeq(out []childSeq, seen map[string]bool, seq childSeq) []childSeq {
	sig := forest.Signature(seq)
	if seen[sig] {
		return out
	}
	seen[sig] = true
	return append(out, seq)
}
