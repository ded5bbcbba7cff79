package earley

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/tokenbend/earlybird"
	"github.com/tokenbend/earlybird/forest"
	"github.com/tokenbend/earlybird/grammar"
	"github.com/tokenbend/earlybird/scanner"
)

// We use the little linguistics grammars from the package documentation for
// testing:
//
//	sentence → noun verb noun
//	noun     → "man" | "dog"
//	verb     → "bites"
func sentenceRules() *grammar.RuleSet {
	b := grammar.NewRuleSetBuilder()
	b.LHS("sentence").N("noun").N("verb").N("noun").End()
	b.LHS("noun").T("man").End()
	b.LHS("noun").T("dog").End()
	b.LHS("verb").T("bites").End()
	return b.RuleSet()
}

func TestRecognizeSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	p := NewParser(sentenceRules())
	if !p.Recognize("sentence", scanner.Fields("man bites dog")) {
		t.Errorf("Valid input not accepted: 'man bites dog'")
	}
	if p.Recognize("sentence", scanner.Fields("man bites")) {
		t.Errorf("Invalid input accepted: 'man bites'")
	}
	if p.Recognize("sentence", scanner.Fields("man bites dog dog")) {
		t.Errorf("Invalid input accepted: 'man bites dog dog'")
	}
}

func TestParseSentenceTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	pf, err := Parse(sentenceRules(), "sentence", scanner.Fields("man bites dog"))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := pf.Single()
	if err != nil {
		t.Fatal(err)
	}
	if tree.Rule.Head() != "sentence" || len(tree.Children) != 3 {
		t.Fatalf("unexpected root %v", tree.Rule)
	}
	subject := tree.Children[0].(*forest.Tree)
	if subject.Rule.Head() != "noun" || subject.Children[0] != "man" {
		t.Errorf("expected (noun man) as first child, got %v", subject)
	}
	toks := forest.Unparse(tree)
	if len(toks) != 3 || toks[0] != "man" || toks[1] != "bites" || toks[2] != "dog" {
		t.Errorf("unparse did not restore the input, got %v", toks)
	}
}

func TestOptional(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("relative").T("step").Opt().T("sister").End()
	rules := b.RuleSet()
	//
	pf, err := Parse(rules, "relative", scanner.Fields("sister"))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := pf.Single()
	if err != nil {
		t.Fatal(err)
	}
	if tree.Children[0] != nil || tree.Children[1] != "sister" {
		t.Errorf("expected (relative None sister), got %v", tree.Children)
	}
	//
	pf, err = Parse(rules, "relative", scanner.Fields("step sister"))
	if err != nil {
		t.Fatal(err)
	}
	tree, err = pf.Single()
	if err != nil {
		t.Fatal(err)
	}
	if tree.Children[0] != "step" || tree.Children[1] != "sister" {
		t.Errorf("expected (relative step sister), got %v", tree.Children)
	}
}

func TestStar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("relative").T("great").Star().T("grandfather").End()
	rules := b.RuleSet()
	//
	pf, err := Parse(rules, "relative", scanner.Fields("grandfather"))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := pf.Single()
	if err != nil {
		t.Fatal(err)
	}
	if group := tree.Children[0].([]interface{}); len(group) != 0 {
		t.Errorf("expected empty star group, got %v", group)
	}
	//
	pf, err = Parse(rules, "relative", scanner.Fields("great great grandfather"))
	if err != nil {
		t.Fatal(err)
	}
	tree, err = pf.Single()
	if err != nil {
		t.Fatal(err)
	}
	group := tree.Children[0].([]interface{})
	if len(group) != 2 || group[0] != "great" || group[1] != "great" {
		t.Errorf("expected two star matches, got %v", group)
	}
	if tree.Children[1] != "grandfather" {
		t.Errorf("expected grandfather after the star group, got %v", tree.Children[1])
	}
}

func TestPlusNeedsOneMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("relative").T("great").Plus().T("grandfather").End()
	rules := b.RuleSet()
	p := NewParser(rules)
	if p.Recognize("relative", scanner.Fields("grandfather")) {
		t.Errorf("plus must not match zero occurrences")
	}
	if !p.Recognize("relative", scanner.Fields("great grandfather")) {
		t.Errorf("plus should match one occurrence")
	}
}

func TestNoParseLocalisation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("s").T("a").T("b").End()
	_, err := Parse(b.RuleSet(), "s", scanner.Fields("a c"))
	noparse, ok := err.(*earlybird.NoParseError)
	if !ok {
		t.Fatalf("expected NoParseError, got %v", err)
	}
	if noparse.StartIndex != 1 || noparse.EndIndex != 1 {
		t.Errorf("expected failure at position 1, got %d", noparse.StartIndex)
	}
	if noparse.Encountered != "c" {
		t.Errorf("expected to encounter 'c', got %v", noparse.Encountered)
	}
	if len(noparse.ExpectedTerminals) != 1 || noparse.ExpectedTerminals[0] != "b" {
		t.Errorf("expected terminal {b}, got %v", noparse.ExpectedTerminals)
	}
	if len(noparse.Expected) != 1 || noparse.Expected[0] != "b" {
		t.Errorf("expected {b}, got %v", noparse.Expected)
	}
}

func TestNoParseOnEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("s").T("a").End()
	_, err := Parse(b.RuleSet(), "s", nil)
	noparse, ok := err.(*earlybird.NoParseError)
	if !ok {
		t.Fatalf("expected NoParseError, got %v", err)
	}
	if noparse.StartIndex != 0 || noparse.EndIndex != 0 {
		t.Errorf("expected failure at position 0, got %d", noparse.StartIndex)
	}
	if noparse.Encountered != nil {
		t.Errorf("expected no encountered token, got %v", noparse.Encountered)
	}
}

// A head subsumes the symbols it predicts: the error should suggest the
// non-terminal, not its internals.
func TestExpectedSubsumption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("s").N("n").T("z").End()
	b.LHS("n").T("a").End()
	_, err := Parse(b.RuleSet(), "s", scanner.Fields("q"))
	noparse, ok := err.(*earlybird.NoParseError)
	if !ok {
		t.Fatalf("expected NoParseError, got %v", err)
	}
	if len(noparse.ExpectedTerminals) != 1 || noparse.ExpectedTerminals[0] != "a" {
		t.Errorf("expected terminal {a}, got %v", noparse.ExpectedTerminals)
	}
	if len(noparse.Expected) != 1 || noparse.Expected[0] != "n" {
		t.Errorf("expected {n} after subsumption, got %v", noparse.Expected)
	}
}

// Anonymous heads stay out of the expected listing; their internals are
// reported instead.
func TestExpectedAnonymousHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("s").N("%hidden").T("z").End()
	b.LHS("%hidden").T("a").End()
	_, err := Parse(b.RuleSet(), "s", scanner.Fields("q"))
	noparse, ok := err.(*earlybird.NoParseError)
	if !ok {
		t.Fatalf("expected NoParseError, got %v", err)
	}
	if len(noparse.Expected) != 1 || noparse.Expected[0] != "a" {
		t.Errorf("expected {a} with %%hidden suppressed, got %v", noparse.Expected)
	}
}

// Adding rules can only grow the language: no previously accepted parse
// disappears (preferences aside).
func TestChartMonotonicity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	input := scanner.Fields("man bites dog")
	pf, err := Parse(sentenceRules(), "sentence", input)
	if err != nil {
		t.Fatal(err)
	}
	before := pf.Count()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("sentence").N("noun").N("verb").N("noun").End()
	b.LHS("noun").T("man").End()
	b.LHS("noun").T("dog").End()
	b.LHS("verb").T("bites").End()
	b.LHS("sentence").N("noun").T("bites").N("noun").End() // new reading
	pf, err = Parse(b.RuleSet(), "sentence", input)
	if err != nil {
		t.Fatal(err)
	}
	if pf.Count() < before {
		t.Errorf("adding a rule removed parses: %d before, %d after", before, pf.Count())
	}
}

func TestUnknownStartHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	_, err := Parse(grammar.NewRuleSet(), "ghost", scanner.Fields("a"))
	noparse, ok := err.(*earlybird.NoParseError)
	if !ok {
		t.Fatalf("expected NoParseError, got %v", err)
	}
	if len(noparse.Expected) != 1 || noparse.Expected[0] != "ghost" {
		t.Errorf("expected the start head to be expected, got %v", noparse.Expected)
	}
}

// Nullable non-terminals complete over zero tokens; late-arriving items in
// the same column must still see those completions.
func TestZeroWidthCompletion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earlybird.chart")
	defer teardown()
	//
	b := grammar.NewRuleSetBuilder()
	b.LHS("s").N("blank").N("blank").T("x").End()
	b.LHS("blank").T("pad").Opt().End()
	rules := b.RuleSet()
	p := NewParser(rules)
	if !p.Recognize("s", scanner.Fields("x")) {
		t.Errorf("nullable chain should accept 'x'")
	}
	if !p.Recognize("s", scanner.Fields("pad x")) {
		t.Errorf("expected 'pad x' to be accepted")
	}
	if !p.Recognize("s", scanner.Fields("pad pad x")) {
		t.Errorf("expected 'pad pad x' to be accepted")
	}
}
