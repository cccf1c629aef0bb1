package morph

import (
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/dictionary"
)

const (
	// maxCompoundParts caps the partition search depth. Unbounded
	// partitioning makes worst-case latency unpredictable on long
	// gibberish inputs, so anything needing more parts is rejected.
	maxCompoundParts = 4
	// minPartLen is the shortest sub-word a compound part may be.
	minPartLen = 2
)

// CompoundChecker validates words formed by concatenating permitted word
// classes per the dictionary's compound grammar.
type CompoundChecker struct {
	dict     *dictionary.Dictionary
	analyzer *Analyzer
}

// NewCompoundChecker creates a checker sharing the analyzer's dictionary.
func NewCompoundChecker(d *dictionary.Dictionary, a *Analyzer) *CompoundChecker {
	return &CompoundChecker{dict: d, analyzer: a}
}

// IsValidCompound reports whether word partitions into an ordered sequence
// of sub-words whose flag classes match some compound rule. The search is
// greedy longest-match-first with backtracking, bounded by maxCompoundParts.
func (c *CompoundChecker) IsValidCompound(word string) bool {
	if !c.dict.HasCompoundRules() {
		return false
	}
	w := utils.NormalizeWord(word)
	if len(w) < 2*minPartLen {
		return false
	}
	// A single root is not a compound.
	if _, ok := c.dict.Lookup(w); ok {
		return false
	}
	return c.match(w, nil)
}

// match extends the partition at the front of rest. flags holds the flag
// sets of the parts chosen so far.
func (c *CompoundChecker) match(rest string, flags []string) bool {
	if rest == "" {
		return len(flags) >= 2 && c.anyRuleMatches(flags)
	}
	if len(flags) == maxCompoundParts {
		return false
	}

	// Longest-match-first over roots that prefix the remainder. The
	// patricia index visits shortest first, so collect then walk backwards.
	var lens []int
	c.dict.VisitRootPrefixes(rest, func(root dictionary.RootEntry) bool {
		if len(root.Word) >= minPartLen && len(root.Word) < len(rest) {
			lens = append(lens, len(root.Word))
		}
		return true
	})
	for i := len(lens) - 1; i >= 0; i-- {
		part := rest[:lens[i]]
		entry, _ := c.dict.Lookup(part)
		if c.match(rest[lens[i]:], append(flags, entry.Flags)) {
			return true
		}
	}

	// The final part may also be an affixed form rather than a bare root.
	if len(rest) >= minPartLen && len(flags) > 0 {
		for _, root := range c.analyzer.Roots(rest) {
			if c.match("", append(flags, root.Flags)) {
				return true
			}
		}
	}
	return false
}

func (c *CompoundChecker) anyRuleMatches(flags []string) bool {
	for i := range c.dict.CompoundRules() {
		rule := &c.dict.CompoundRules()[i]
		if rule.MatchFlagSets(flags) {
			return true
		}
	}
	return false
}
