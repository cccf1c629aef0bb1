package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFallback(t *testing.T) {
	d := NewFallback("xx-XX")

	assert.Equal(t, "xx-XX", d.Language())
	assert.True(t, d.IsFallback())
	assert.Empty(t, d.AffixRules())
	assert.False(t, d.HasCompoundRules())
	assert.Greater(t, d.WordCount(), 50)

	_, ok := d.Lookup("the")
	assert.True(t, ok)
	_, ok = d.Lookup("zyzzyva")
	assert.False(t, ok)
}
