/*
Package lexmach adapts lexmachine (https://github.com/timtadh/lexmachine)
as a tokenizer for the parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexmach

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/tokenbend/earlybird"
	"github.com/tokenbend/earlybird/scanner"
)

// tracer traces with key 'earlybird.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("earlybird.scanner")
}

// LMAdapter wraps a compiled lexmachine lexer. Create one with NewLMAdapter,
// then derive a Tokenizer per input with Scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an optional
// init function for client patterns, a list of literals ('[', ';', …) and
// a list of keywords ("if", "for", …). Literals and keywords are emitted
// as their lexeme strings, which is what word-level grammars match on.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string) (*LMAdapter, error) {
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeLexeme)
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeLexeme)
	}
	adapter.Lexer.Add([]byte("( |\t|\n|\r)+"), Skip)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a tokenizer for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner wraps a lexmachine scanner as a Tokenizer.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() (earlybird.Token, bool) {
	if lms.scanner == nil {
		return nil, false
	}
	for {
		tok, err, eof := lms.scanner.Next()
		if err != nil {
			lms.Error(err)
			if ui, is := err.(*machines.UnconsumedInput); is {
				lms.scanner.TC = ui.FailTC
			}
			continue
		}
		if eof {
			return nil, false
		}
		if tok == nil { // skipped match
			continue
		}
		token := tok.(*lexmachine.Token)
		return string(token.Lexeme), true
	}
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeLexeme is a pre-defined action which emits the scanned match as its
// lexeme string.
func MakeLexeme(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return s.Token(0, string(m.Bytes), m), nil
}
