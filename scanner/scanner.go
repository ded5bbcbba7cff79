/*
Package scanner provides convenience tokenizers for feeding the parser from
plain text.

The parser itself accepts any sequence of opaque tokens and delegates
matching to terminal symbols, so tokenisation stays the client's business.
For grammars whose terminals simply match words or lexemes (tests,
prototypes, small ad-hoc languages) this package removes the boilerplate:
a thin wrapper over the Go std lib 'text/scanner', a whitespace splitter,
and an adapter for lexmachine in sub-package lexmach. All of them produce
tokens that are plain lexeme strings.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package scanner

import (
	"io"
	"strings"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"

	"github.com/tokenbend/earlybird"
)

// tracer traces with key 'earlybird.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("earlybird.scanner")
}

// Tokenizer produces a stream of opaque tokens. The second return value is
// false when the input is exhausted.
type Tokenizer interface {
	NextToken() (earlybird.Token, bool)
}

// Drain collects all remaining tokens of a tokenizer into a slice, the
// shape the parser consumes.
func Drain(tz Tokenizer) []earlybird.Token {
	var toks []earlybird.Token
	for tok, ok := tz.NextToken(); ok; tok, ok = tz.NextToken() {
		toks = append(toks, tok)
	}
	return toks
}

// Fields splits an input string around whitespace, one token per field.
// Good enough for word-level grammars and tests.
func Fields(input string) []earlybird.Token {
	fields := strings.Fields(input)
	toks := make([]earlybird.Token, len(fields))
	for i, f := range fields {
		toks[i] = f
	}
	return toks
}

// DefaultTokenizer is a tokenizer backed by text/scanner, yielding lexemes
// for tokens similar to the Go language. Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	Error func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a tokenizer accepting tokens similar to the Go
// language.
func GoTokenizer(sourceID string, input io.Reader) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(_ *scanner.Scanner, msg string) {
		t.Error(scanError(msg))
	}
	return t
}

type scanError string

func (e scanError) Error() string {
	return string(e)
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() (earlybird.Token, bool) {
	if t.Scan() == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return nil, false
	}
	return t.TokenText(), true
}
