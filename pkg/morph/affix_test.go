package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/spellserve/pkg/dictionary"
)

var morphAffix = []byte(`
TRY abcdefghijklmnopqrstuvwxyz

PFX A Y 1
PFX A 0 re .

SFX S Y 2
SFX S y ies [^aeiou]y
SFX S 0 s [^y]

SFX D Y 1
SFX D 0 ed .

COMPOUNDRULE 2
COMPOUNDRULE XY
COMPOUNDRULE XZ*Y
`)

var morphWords = []byte(`hello/S
help/D
held
fly/S
play/A
book/X
shop/YS
case/Y
mid/Z
work/AD
`)

func newTestDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	d, err := dictionary.Parse("en-US", morphAffix, morphWords)
	require.NoError(t, err)
	return d
}

func TestIsValidRoots(t *testing.T) {
	a := NewAnalyzer(newTestDict(t))

	assert.True(t, a.IsValid("hello"))
	assert.True(t, a.IsValid("held"))
	assert.True(t, a.IsValid("Hello"))
	assert.True(t, a.IsValid("  work "))
	assert.False(t, a.IsValid("helo"))
	assert.False(t, a.IsValid(""))
}

func TestIsValidDerivedForms(t *testing.T) {
	a := NewAnalyzer(newTestDict(t))

	tests := []struct {
		word string
		want bool
	}{
		{"hellos", true},    // hello + SFX S
		{"flies", true},     // fly + SFX S, y -> ies
		{"helped", true},    // help + SFX D
		{"replay", true},    // play + PFX A
		{"rework", true},    // work + PFX A
		{"worked", true},    // work + SFX D
		{"flys", false},     // condition [^y] blocks bare s after y
		{"helds", false},    // held carries no flags
		{"reheld", false},   // held is not licensed for PFX A
		{"reworked", false}, // chained application is single-level
		{"playier", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, a.IsValid(tc.word), "word %q", tc.word)
	}
}

func TestRoots(t *testing.T) {
	a := NewAnalyzer(newTestDict(t))

	roots := a.Roots("flies")
	require.Len(t, roots, 1)
	assert.Equal(t, "fly", roots[0].Word)
	assert.Equal(t, "S", roots[0].Flags)

	// Verbatim root comes first.
	roots = a.Roots("work")
	require.NotEmpty(t, roots)
	assert.Equal(t, "work", roots[0].Word)

	assert.Empty(t, a.Roots("zzz"))
	assert.Empty(t, a.Roots(""))
}

func TestExpand(t *testing.T) {
	d := newTestDict(t)
	a := NewAnalyzer(d)

	hello, ok := d.Lookup("hello")
	require.True(t, ok)
	assert.Equal(t, []string{"hello", "hellos"}, a.Expand(hello))

	fly, ok := d.Lookup("fly")
	require.True(t, ok)
	assert.Equal(t, []string{"fly", "flies"}, a.Expand(fly))

	work, ok := d.Lookup("work")
	require.True(t, ok)
	assert.Equal(t, []string{"work", "rework", "worked"}, a.Expand(work))

	held, ok := d.Lookup("held")
	require.True(t, ok)
	assert.Equal(t, []string{"held"}, a.Expand(held))
}
