package forest

import (
	"math"

	"github.com/tokenbend/earlybird/grammar"
)

// The pruner removes dominated alternatives from OrNodes in three layers,
// applied in this exact order:
//
//  1. Penalty: below each OrNode, only alternatives achieving the node's
//     minimum total penalty survive.
//  2. Greedy/lazy: alternatives of the same rule are compared
//     lexicographically over their child sequences; the first position
//     where their match counts differ decides, following that symbol's
//     greedy or lazy flag. Positions without a repetition preference rank
//     all counts equal.
//  3. Prefer-early/late: where a non-terminal call site carries a rule
//     choice preference, only the alternatives whose rule comes first
//     (resp. last) in rule-set insertion order survive. This layer is
//     call-site scoped and therefore applied per reference, not stored on
//     the node (see prefMode and survivorsFor).
//
// All three layers trim only: none of them can empty an OrNode, so
// preferences never turn an accepted input into a rejected one.

const infPenalty = math.MaxInt32

// Prune evaluates the penalty and greedy/lazy layers on every node and
// memoises the per-node minimum penalties. It must run once, before the
// forest is traversed.
func (f *Forest) Prune() {
	if f.pruned {
		return
	}
	f.pruned = true
	f.relaxPenalties()
	for _, n := range f.nodes {
		survivors := n.penaltySurvivors()
		survivors = trimRepetition(survivors)
		n.survived = survivors
	}
}

// relaxPenalties computes the minimum achievable penalty per node. The
// forest may contain cycles (that is what infinite-parse detection is
// for), so the minimum is the least fixpoint of
//
//	penalty(or)  = min over alternatives of penalty(and)
//	penalty(and) = rule penalty + Σ penalty(child or-nodes)
//
// reached by relaxation from ∞. Penalties are non-negative, so the
// iteration is monotone and terminates.
func (f *Forest) relaxPenalties() {
	for _, n := range f.nodes {
		n.penalty = infPenalty
		for _, a := range n.alts {
			a.penalty = infPenalty
		}
	}
	for changed := true; changed; {
		changed = false
		for _, n := range f.nodes {
			best := infPenalty
			for _, a := range n.alts {
				pen := saturatingAdd(a.Rule.Penalty(), edgesPenalty(a.Children))
				if pen < a.penalty {
					a.penalty = pen
					changed = true
				}
				if a.penalty < best {
					best = a.penalty
				}
			}
			if best < n.penalty {
				n.penalty = best
				changed = true
			}
		}
	}
}

func edgesPenalty(edges []ChildEdge) int {
	sum := 0
	for _, e := range edges {
		switch e.Kind {
		case EdgeNode:
			sum = saturatingAdd(sum, e.Node.penalty)
		case EdgeGroup:
			sum = saturatingAdd(sum, edgesPenalty(e.Group))
		}
	}
	return sum
}

func saturatingAdd(a, b int) int {
	if a >= infPenalty || b >= infPenalty {
		return infPenalty
	}
	return a + b
}

func (n *OrNode) penaltySurvivors() []*AndNode {
	survivors := make([]*AndNode, 0, len(n.alts))
	for _, a := range n.alts {
		if a.penalty <= n.penalty {
			survivors = append(survivors, a)
		}
	}
	return survivors
}

// --- Greedy/lazy ------------------------------------------------------

// trimRepetition drops alternatives dominated under the left-to-right
// repetition preference order. Only alternatives of the same rule are
// comparable; the surviving set is the minimal equivalence class of the
// partial order.
func trimRepetition(alts []*AndNode) []*AndNode {
	if len(alts) < 2 {
		return alts
	}
	out := alts[:0:0]
	for _, a := range alts {
		dominated := false
		for _, b := range alts {
			if b != a && repetitionWins(b, a) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, a)
		}
	}
	return out
}

// repetitionWins reports whether alternative b is strictly preferred over a
// under the greedy/lazy lexicographic comparison. Both must apply the same
// rule; the first RHS position whose match counts differ under a greedy or
// lazy symbol decides.
func repetitionWins(b, a *AndNode) bool {
	if b.Rule != a.Rule {
		return false
	}
	rhs := b.Rule.RHS()
	for k := range rhs {
		sym := rhs[k]
		if !sym.IsGreedy() && !sym.IsLazy() {
			continue
		}
		cb, ca := b.Children[k].matchCount(), a.Children[k].matchCount()
		if cb == ca {
			continue
		}
		if sym.IsGreedy() {
			return cb > ca
		}
		return cb < ca
	}
	return false
}

// --- Prefer-early/late ------------------------------------------------

// prefMode is the rule-choice preference a reference to an OrNode carries.
// It comes from the non-terminal symbol at the call site; the root of the
// forest is referenced without a preference.
type prefMode uint8

const (
	prefNone prefMode = iota
	prefEarly
	prefLate
)

func prefOf(sym grammar.Symbol) prefMode {
	switch {
	case sym.PrefersEarly():
		return prefEarly
	case sym.PrefersLate():
		return prefLate
	}
	return prefNone
}

// survivorsFor returns the alternatives of a node surviving all three
// pruning layers, given the rule-choice preference of the referencing call
// site. Ties among equal-serial rules cannot occur, since serials are
// unique per rule set.
func (n *OrNode) survivorsFor(pref prefMode) []*AndNode {
	alts := n.survived
	if pref == prefNone || len(alts) < 2 {
		return alts
	}
	pick := alts[0].Rule.Serial()
	for _, a := range alts[1:] {
		s := a.Rule.Serial()
		if (pref == prefEarly && s < pick) || (pref == prefLate && s > pick) {
			pick = s
		}
	}
	out := make([]*AndNode, 0, len(alts))
	for _, a := range alts {
		if a.Rule.Serial() == pick {
			out = append(out, a)
		}
	}
	return out
}
