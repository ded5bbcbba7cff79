package lexmach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tokenbend/earlybird/scanner"
)

func TestLexmachineAdapter(t *testing.T) {
	assert := assert.New(t)
	adapter, err := NewLMAdapter(nil, []string{"+", "("}, []string{"man", "bites", "dog"})
	assert.NoError(err)
	lms, err := adapter.Scanner("man bites + dog")
	assert.NoError(err)
	toks := scanner.Drain(lms)
	assert.Equal([]interface{}{"man", "bites", "+", "dog"}, toks)
}

func TestLexmachineEOF(t *testing.T) {
	assert := assert.New(t)
	adapter, err := NewLMAdapter(nil, nil, []string{"word"})
	assert.NoError(err)
	lms, err := adapter.Scanner("")
	assert.NoError(err)
	_, ok := lms.NextToken()
	assert.False(ok)
}
