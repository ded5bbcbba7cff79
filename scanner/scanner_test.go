package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	assert := assert.New(t)
	toks := Fields("  man bites\tdog ")
	assert.Equal(3, len(toks))
	assert.Equal("man", toks[0])
	assert.Equal("dog", toks[2])
	assert.Empty(Fields("   "))
}

func TestGoTokenizer(t *testing.T) {
	assert := assert.New(t)
	tz := GoTokenizer("test", strings.NewReader("1 + (2 * x)"))
	toks := Drain(tz)
	assert.Equal([]interface{}{"1", "+", "(", "2", "*", "x", ")"}, toks)
}

func TestGoTokenizerEmpty(t *testing.T) {
	assert := assert.New(t)
	tz := GoTokenizer("empty", strings.NewReader(""))
	_, ok := tz.NextToken()
	assert.False(ok)
}
