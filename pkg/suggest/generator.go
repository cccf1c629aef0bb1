/*
Package suggest produces ranked correction candidates for misspelled words.

Candidates are generated by single-character edits (deletion, adjacent
transposition, substitution, insertion) over the dictionary's alphabet,
filtered through the morphological engines, and ranked by edit distance
with a case-insensitive lexicographic tie-break. A bounded second edit
pass widens recall when the first pass comes up short.
*/
package suggest

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/bastiangx/spellserve/pkg/morph"
)

// maxCandidateSet caps the total number of distinct candidates considered
// per call. The double-edit pass exits early once the cap is hit, keeping
// the worst case bounded instead of combinatorial.
const maxCandidateSet = 4096

// Generator produces correction candidates against one dictionary.
// Results are recomputed per call; Generators are cheap and stateless
// beyond their engine references.
type Generator struct {
	analyzer *morph.Analyzer
	compound *morph.CompoundChecker
	alphabet []rune
}

// NewGenerator creates a Generator over the given engines. The suggestion
// alphabet comes from the dictionary's TRY declaration when present.
func NewGenerator(d *dictionary.Dictionary, a *morph.Analyzer, c *morph.CompoundChecker) *Generator {
	return &Generator{
		analyzer: a,
		compound: c,
		alphabet: d.Alphabet(),
	}
}

// Suggest returns up to limit corrections for word, ordered by ascending
// edit distance and then case-insensitive lexicographic order. A word that
// is already valid yields an empty result.
func (g *Generator) Suggest(word string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	w := utils.NormalizeWord(word)
	if w == "" {
		return nil
	}
	if g.isValid(w) {
		return nil
	}

	seen := map[string]bool{w: true}
	edits1 := g.edits(w, seen)

	type ranked struct {
		word string
		dist int
	}
	var results []ranked
	for _, cand := range edits1 {
		if g.isValid(cand) {
			results = append(results, ranked{cand, 1})
		}
	}

	// Second pass only when single edits leave the request unfilled.
	if len(results) < limit {
		valid2 := make(map[string]bool)
		for _, cand := range edits1 {
			if len(seen) >= maxCandidateSet {
				log.Debugf("Candidate cap reached expanding %q", w)
				break
			}
			for _, cand2 := range g.edits(cand, seen) {
				if g.isValid(cand2) {
					valid2[cand2] = true
				}
			}
		}
		for cand := range valid2 {
			results = append(results, ranked{cand, 2})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].dist != results[j].dist {
			return results[i].dist < results[j].dist
		}
		return results[i].word < results[j].word
	})

	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.word
	}
	return out
}

func (g *Generator) isValid(word string) bool {
	if g.analyzer.IsValid(word) {
		return true
	}
	return g.compound != nil && g.compound.IsValidCompound(word)
}

// edits generates every distinct single-edit variant of w not already in
// seen, applying deletion, transposition, substitution and insertion in
// that order at each rune position. seen is updated in place.
func (g *Generator) edits(w string, seen map[string]bool) []string {
	runes := []rune(w)
	var out []string
	add := func(cand string) {
		if cand != "" && !seen[cand] && len(seen) < maxCandidateSet {
			seen[cand] = true
			out = append(out, cand)
		}
	}

	// Deletions.
	for i := range runes {
		add(string(runes[:i]) + string(runes[i+1:]))
	}
	// Adjacent transpositions.
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] == runes[i+1] {
			continue
		}
		t := make([]rune, len(runes))
		copy(t, runes)
		t[i], t[i+1] = t[i+1], t[i]
		add(string(t))
	}
	// Substitutions.
	for i := range runes {
		for _, c := range g.alphabet {
			if c == runes[i] {
				continue
			}
			t := make([]rune, len(runes))
			copy(t, runes)
			t[i] = c
			add(string(t))
		}
	}
	// Insertions.
	for i := 0; i <= len(runes); i++ {
		for _, c := range g.alphabet {
			add(string(runes[:i]) + string(c) + string(runes[i:]))
		}
	}
	return out
}
