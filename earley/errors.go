package earley

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/tokenbend/earlybird"
)

// noParse localises a failed recognition: the error points at the last
// column the recognizer was still active in, names the token found there
// and lists what would have been accepted instead.
func (p *Parser) noParse() *earlybird.NoParseError {
	k := 0
	for i, col := range p.columns {
		if !col.items.Empty() {
			k = i
		}
	}
	err := &earlybird.NoParseError{
		StartIndex: uint64(k),
		EndIndex:   uint64(k),
	}
	if k < len(p.tokens) {
		err.Encountered = p.tokens[k]
	}
	err.ExpectedTerminals, err.Expected = p.expectedAt(k)
	if len(err.Expected) == 0 && p.columns[0].items.Empty() && !p.rules.IsAnonymous(p.start) {
		// the grammar has no rules for the start head at all
		err.Expected = []string{p.start}
	}
	return err
}

// expectedAt collects the terminals under a dot in column k and combines
// them with the non-anonymous heads predicted there. An entry is dropped
// from the combined listing when every item exposing it was predicted in
// column k from a different, listed head; the broader head subsumes it.
func (p *Parser) expectedAt(k int) (terminals []string, expected []string) {
	col := p.columns[k]
	terms := treeset.NewWith(utils.StringComparator)
	heads := treeset.NewWith(utils.StringComparator)
	col.items.Each(func(el interface{}) {
		it := el.(*item)
		sym, ok := it.symbol()
		if !ok {
			return
		}
		if sym.IsTerminal() {
			terms.Add(sym.Name())
		} else if !p.rules.IsAnonymous(sym.Name()) {
			heads.Add(sym.Name())
		}
	})
	combined := treeset.NewWith(utils.StringComparator)
	terms.Each(func(_ int, v interface{}) {
		terminals = append(terminals, v.(string))
		if !p.subsumedAt(k, v.(string), true, heads) {
			combined.Add(v)
		}
	})
	heads.Each(func(_ int, v interface{}) {
		if !p.subsumedAt(k, v.(string), false, heads) {
			combined.Add(v)
		}
	})
	combined.Each(func(_ int, v interface{}) {
		expected = append(expected, v.(string))
	})
	return terminals, expected
}

// subsumedAt reports whether every column-k item exposing the named symbol
// under its dot was predicted in column k from a different, listed head.
func (p *Parser) subsumedAt(k int, name string, terminal bool, heads *treeset.Set) bool {
	col := p.columns[k]
	exposed := false
	subsumed := true
	col.items.Each(func(el interface{}) {
		it := el.(*item)
		sym, ok := it.symbol()
		if !ok || sym.IsTerminal() != terminal || sym.Name() != name {
			return
		}
		exposed = true
		parent := it.rule.Head()
		if it.origin != uint64(k) || parent == name || !heads.Contains(parent) {
			subsumed = false
		}
	})
	return exposed && subsumed
}
