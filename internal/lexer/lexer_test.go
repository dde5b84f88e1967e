package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(t *testing.T, input string) []Type {
	t.Helper()
	toks, err := Tokenize(input)
	require.NoError(t, err)
	types := make([]Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizeSimpleWord(t *testing.T) {
	assert.Equal(t, []Type{WordString, Eof}, tokenTypes(t, "groceries"))
}

func TestTokenizeStatusFilter(t *testing.T) {
	toks, err := Tokenize("status:pending")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, FilterStatus, toks[0].Type)
	assert.Equal(t, "status:", toks[0].Literal)
	assert.Equal(t, WordString, toks[1].Type)
	assert.Equal(t, "pending", toks[1].Literal)
}

func TestTokenizeDueBeforeNotConfusedWithDue(t *testing.T) {
	toks, err := Tokenize("due.before:today")
	require.NoError(t, err)
	assert.Equal(t, FilterDateDueBefore, toks[0].Type)
	assert.Equal(t, "due.before:", toks[0].Literal)
}

func TestTokenizeBareDue(t *testing.T) {
	toks, err := Tokenize("due:tomorrow")
	require.NoError(t, err)
	assert.Equal(t, FilterDateDue, toks[0].Type)
}

func TestTokenizeAndAsOperator(t *testing.T) {
	assert.Equal(t, []Type{WordString, Blank, OperatorAnd, Blank, WordString, Eof},
		tokenTypes(t, "foo and bar"))
}

func TestTokenizeAndAsWordPrefix(t *testing.T) {
	// "android" must not split into the "and" operator plus "roid".
	types := tokenTypes(t, "android")
	assert.Equal(t, []Type{WordString, Eof}, types)
}

func TestTokenizeUUID(t *testing.T) {
	toks, err := Tokenize("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, Uuid, toks[0].Type)
}

func TestTokenizeTagPrefixes(t *testing.T) {
	assert.Equal(t, []Type{TagPlusPrefix, WordString, Blank, TagMinusPrefix, WordString, Eof},
		tokenTypes(t, "+home -urgent"))
}

func TestTokenizeParentheses(t *testing.T) {
	assert.Equal(t, []Type{LeftParenthesis, WordString, RightParenthesis, Eof},
		tokenTypes(t, "(foo)"))
}

func TestTokenizeDependsOn(t *testing.T) {
	toks, err := Tokenize("depends:none")
	require.NoError(t, err)
	assert.Equal(t, DependsOn, toks[0].Type)
}

func TestTokenizeProjectAliases(t *testing.T) {
	for _, in := range []string{"project:home", "proj:home"} {
		toks, err := Tokenize(in)
		require.NoError(t, err)
		assert.Equal(t, ProjectPrefix, toks[0].Type)
	}
}
