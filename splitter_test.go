package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		sep  rune
		want []string
	}{
		{"plain", "a, b, c", ',', []string{"a", " b", " c"}},
		{"empty input", "", ',', []string{""}},
		{"doubled separator", "a,,b", ',', []string{"a", "", "b"}},
		{"escaped separator kept", `a\,b, c`, ',', []string{`a\,b`, " c"}},
		{"separator inside quotes", "a, 'b, c', d", ',', []string{"a", " 'b, c'", " d"}},
		{"double quotes", `a, "b, c"`, ',', []string{"a", ` "b, c"`}},
		{"alternate separator", "a;b,c", ';', []string{"a", "b,c"}},
		{"no split with zero separator", "a, b", 0, []string{"a, b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitTokens(tt.raw, tt.sep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTokens_UnmatchedQuote(t *testing.T) {
	_, err := splitTokens("a, 'b, c", ',')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestUnquoteToken(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  plain  ", "plain"},
		{"'kept   whitespace   '", "kept   whitespace   "},
		{`  "  quoted  "  `, "  quoted  "},
		{`a\,b`, "a,b"},
		{`c:\\path`, `c:\path`},
		{`'it''s'`, "it''s"}, // quotes do not nest; only the outer pair strips
		{`'a'b`, `'a'b`},     // not fully wrapped, quotes stay literal
		{"''", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unquoteToken(tt.raw), "input %q", tt.raw)
	}
}

func TestSplitValue_Scalar(t *testing.T) {
	v, err := splitValue(TypeScalar, `This has a comma here \, in the data`, ',')
	require.NoError(t, err)
	assert.Equal(t, TypeScalar, v.Kind())
	assert.Equal(t, "This has a comma here , in the data", v.Scalar())
}

func TestSplitValue_ScalarQuoted(t *testing.T) {
	v, err := splitValue(TypeScalar, "'this and that   '", ',')
	require.NoError(t, err)
	assert.Equal(t, "this and that   ", v.Scalar())
}

func TestSplitValue_Array(t *testing.T) {
	v, err := splitValue(TypeArray, "val1, val2, 'val 3   ', val4", ',')
	require.NoError(t, err)
	assert.Equal(t, TypeArray, v.Kind())
	assert.Equal(t, []string{"val1", "val2", "val 3   ", "val4"}, v.Array())
}

func TestSplitValue_ArrayEmptyElements(t *testing.T) {
	v, err := splitValue(TypeArray, "a,,b", ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, v.Array())
}

func TestSplitValue_Hash(t *testing.T) {
	v, err := splitValue(TypeHash, "v1 = a, v2 = b", ',')
	require.NoError(t, err)
	require.Equal(t, TypeHash, v.Kind())

	h := v.Hash()
	assert.Equal(t, []string{"v1", "v2"}, h.Keys())
	got, ok := h.Get("v1")
	assert.True(t, ok)
	assert.Equal(t, "a", got)
}

func TestSplitValue_HashValueMayContainEquals(t *testing.T) {
	v, err := splitValue(TypeHash, "expr = a=b=c", ',')
	require.NoError(t, err)
	got, _ := v.Hash().Get("expr")
	assert.Equal(t, "a=b=c", got)
}

func TestSplitValue_HashQuotedValue(t *testing.T) {
	v, err := splitValue(TypeHash, "greeting = 'hello   world  '", ',')
	require.NoError(t, err)
	got, _ := v.Hash().Get("greeting")
	assert.Equal(t, "hello   world  ", got)
}

func TestSplitValue_HashDuplicateKeyLastWins(t *testing.T) {
	v, err := splitValue(TypeHash, "k = one, k = two", ',')
	require.NoError(t, err)
	h := v.Hash()
	assert.Equal(t, []string{"k"}, h.Keys())
	got, _ := h.Get("k")
	assert.Equal(t, "two", got)
}

func TestSplitValue_HashMissingPair(t *testing.T) {
	_, err := splitValue(TypeHash, "v1 = a, nopair", ',')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestSplitValue_HashEmptyKey(t *testing.T) {
	_, err := splitValue(TypeHash, "= a", ',')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestSplitValue_AlternateSeparator(t *testing.T) {
	v, err := splitValue(TypeArray, `one;two\;half;three`, ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two;half", "three"}, v.Array())
}
