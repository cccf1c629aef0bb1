package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/bastiangx/spellserve/pkg/morph"
)

func newGenerator(t *testing.T, words string) *Generator {
	t.Helper()
	affix := []byte("TRY abcdefghijklmnopqrstuvwxyz\n")
	d, err := dictionary.Parse("en-US", affix, []byte(words))
	require.NoError(t, err)
	a := morph.NewAnalyzer(d)
	return NewGenerator(d, a, nil)
}

func TestSuggestRanking(t *testing.T) {
	g := newGenerator(t, "hello\nhelp\nheld\n")

	// All three corrections are one edit away; ties break alphabetically.
	got := g.Suggest("helo", 10)
	assert.Equal(t, []string{"held", "hello", "help"}, got)
}

func TestSuggestLimit(t *testing.T) {
	g := newGenerator(t, "hello\nhelp\nheld\n")

	got := g.Suggest("helo", 2)
	assert.Equal(t, []string{"held", "hello"}, got)

	assert.Nil(t, g.Suggest("helo", 0))
	assert.Nil(t, g.Suggest("helo", -1))
}

func TestSuggestValidWordYieldsNothing(t *testing.T) {
	g := newGenerator(t, "hello\nhelp\nheld\n")

	assert.Empty(t, g.Suggest("hello", 10))
	assert.Empty(t, g.Suggest("Hello", 10))
}

func TestSuggestEditKinds(t *testing.T) {
	tests := []struct {
		name  string
		words string
		input string
		want  string
	}{
		{"deletion", "cat\n", "caat", "cat"},
		{"transposition", "cat\n", "cta", "cat"},
		{"substitution", "cat\n", "cap", "cat"},
		{"insertion", "cart\n", "cat", "cart"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGenerator(t, tc.words)
			got := g.Suggest(tc.input, 10)
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestSuggestSecondEditPass(t *testing.T) {
	// A small TRY alphabet keeps the candidate set well under the
	// expansion cap, so the double-edit pass explores every branch.
	affix := []byte("TRY spel\n")
	d, err := dictionary.Parse("en-US", affix, []byte("spell\n"))
	require.NoError(t, err)
	g := NewGenerator(d, morph.NewAnalyzer(d), nil)

	// "spl" needs two insertions to reach "spell".
	got := g.Suggest("spl", 5)
	assert.Contains(t, got, "spell")
}

func TestSuggestSecondPassRanksBehindFirst(t *testing.T) {
	// "ax" is one edit from "axe" and two from "apex".
	g := newGenerator(t, "axe\napex\n")

	got := g.Suggest("ax", 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "axe", got[0])
}

func TestSuggestNormalizesInput(t *testing.T) {
	g := newGenerator(t, "hello\n")

	got := g.Suggest("  HELO ", 5)
	assert.Equal(t, []string{"hello"}, got)
}

func TestSuggestAffixedForms(t *testing.T) {
	affix := []byte("TRY abcdefghijklmnopqrstuvwxyz\nSFX D Y 1\nSFX D 0 ed .\n")
	d, err := dictionary.Parse("en-US", affix, []byte("help/D\n"))
	require.NoError(t, err)
	g := NewGenerator(d, morph.NewAnalyzer(d), nil)

	// "helped" is valid only through the affix rule.
	got := g.Suggest("halped", 5)
	assert.Contains(t, got, "helped")
}

func TestSuggestEmptyInput(t *testing.T) {
	g := newGenerator(t, "hello\n")
	assert.Nil(t, g.Suggest("", 5))
	assert.Nil(t, g.Suggest("   ", 5))
}
