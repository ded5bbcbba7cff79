package forest

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/lists/arraylist"
)

// ToGraphViz exports a forest to an io.Writer in GraphViz DOT format.
// Or-edges (ambiguity forks) are dashed, and-edges are numbered left to
// right, each element of a star/plus group counting as one edge. Handy for
// debugging preference pruning.
func ToGraphViz(f *Forest, w io.Writer) {
	io.WriteString(w, `digraph G {
{ graph [fontname="Helvetica"];
  node [fontname="Helvetica",shape=box,fontsize=10];
  edge [fontname="Helvetica",fontsize=9];
`)
	nodes := arraylist.New()
	for _, n := range f.nodes {
		nodes.Add(n)
	}
	nodes.Sort(func(x, y interface{}) int {
		nx, ny := x.(*OrNode), y.(*OrNode)
		if nx.span.From() != ny.span.From() {
			return int(nx.span.From()) - int(ny.span.From())
		}
		return nx.id - ny.id
	})
	it := nodes.Iterator()
	for it.Next() {
		n := it.Value().(*OrNode)
		io.WriteString(w, fmt.Sprintf("%q []\n", n.String()))
		for i, a := range n.alts {
			io.WriteString(w, fmt.Sprintf("\"%s alt %d (%d)\" [style=rounded,color=\"#404040\"]\n",
				n.String(), i, a.Rule.Serial()))
		}
	}
	io.WriteString(w, "}\n")
	it = nodes.Iterator()
	for it.Next() {
		n := it.Value().(*OrNode)
		for i, a := range n.alts {
			alt := fmt.Sprintf("%s alt %d (%d)", n.String(), i, a.Rule.Serial())
			io.WriteString(w, fmt.Sprintf("%q -> %q [style=dashed]\n", n.String(), alt))
			writeChildEdges(w, alt, a.Children)
		}
	}
	io.WriteString(w, "}\n")
}

func writeChildEdges(w io.Writer, from string, edges []ChildEdge) {
	seq := 0
	var write func(edges []ChildEdge)
	write = func(edges []ChildEdge) {
		for _, e := range edges {
			switch e.Kind {
			case EdgeToken:
				io.WriteString(w, fmt.Sprintf("%q -> \"t%d: %v\" [label=%d]\n",
					from, e.TokenIndex, e.Token, seq))
			case EdgeNode:
				io.WriteString(w, fmt.Sprintf("%q -> %q [label=%d]\n",
					from, e.Node.String(), seq))
			case EdgeNone:
				io.WriteString(w, fmt.Sprintf("%q -> \"ε%d\" [label=%d]\n", from, seq, seq))
			case EdgeGroup:
				write(e.Group)
				continue
			}
			seq++
		}
	}
	write(edges)
}
