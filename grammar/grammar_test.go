package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolConstruction(t *testing.T) {
	assert := assert.New(t)
	term := Terminal("man")
	assert.True(term.IsTerminal())
	assert.Equal("man", term.Name())
	assert.True(term.Matches("man"))
	assert.False(term.Matches("dog"))
	nt := NonTerminal("noun", Star, Greedy)
	assert.False(nt.IsTerminal())
	assert.True(nt.IsStar())
	assert.True(nt.IsGreedy())
	assert.True(nt.IsNullable())
	assert.False(nt.Matches("noun"))
}

func TestTerminalFunc(t *testing.T) {
	assert := assert.New(t)
	num := TerminalFunc("number", func(tok interface{}) bool {
		_, ok := tok.(int)
		return ok
	})
	assert.True(num.Matches(42))
	assert.False(num.Matches("42"))
}

func TestSymbolInvariants(t *testing.T) {
	assert := assert.New(t)
	assert.Panics(func() { Terminal("x", Greedy, Lazy, Star) })
	assert.Panics(func() { Terminal("x", Star, Plus) })
	assert.Panics(func() { Terminal("x", Greedy) }, "greedy needs a quantifier")
	assert.Panics(func() { NonTerminal("x", PreferEarly, PreferLate) })
	assert.Panics(func() { Terminal("x", PreferEarly) }, "prefer is for non-terminals")
	assert.NotPanics(func() { NonTerminal("x", Plus, Lazy, PreferLate) })
}

func TestRuleSetOrder(t *testing.T) {
	assert := assert.New(t)
	rs := NewRuleSet()
	r1 := rs.Add(NewRule("noun", []Symbol{Terminal("man")}, 0))
	r2 := rs.Add(NewRule("noun", []Symbol{Terminal("dog")}, 0))
	r3 := rs.Add(NewRule("verb", []Symbol{Terminal("bites")}, 0))
	assert.Equal(0, r1.Serial())
	assert.Equal(1, r2.Serial())
	assert.Equal(2, r3.Serial())
	assert.Equal([]*Rule{r1, r2}, rs.RulesFor("noun"))
	assert.Empty(rs.RulesFor("adjective"))
	assert.Equal(3, rs.Size())
	assert.Panics(func() { rs.Add(r1) }, "rules belong to one set")
}

func TestAnonymousHeads(t *testing.T) {
	assert := assert.New(t)
	rs := NewRuleSet()
	assert.True(rs.IsAnonymous("%group1"))
	assert.False(rs.IsAnonymous("group"))
}

func TestRuleSetBuilder(t *testing.T) {
	assert := assert.New(t)
	b := NewRuleSetBuilder()
	b.LHS("sentence").N("noun").N("verb").N("noun").End()
	b.LHS("described").N("adjective", Star, Greedy).N("relative").End()
	r := b.LHS("relative").T("great").Star().T("grandfather").Penalty(2).End()
	rs := b.RuleSet()
	assert.Equal(3, rs.Size())
	assert.Equal("relative", r.Head())
	assert.Equal(2, r.Penalty())
	assert.True(r.RHS()[0].IsStar())
	assert.False(r.RHS()[1].IsStar())
	desc := rs.RulesFor("described")[0]
	assert.True(desc.RHS()[0].IsGreedy())
	sent := rs.RulesFor("sentence")[0]
	assert.Len(sent.RHS(), 3)
	assert.False(sent.RHS()[0].IsTerminal())
}

func TestRuleStrings(t *testing.T) {
	assert := assert.New(t)
	b := NewRuleSetBuilder()
	r := b.LHS("relative").T("step").Opt().T("sister").End()
	assert.Equal(`relative → "step"? "sister"`, r.String())
}
