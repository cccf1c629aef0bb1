/*
Package morph validates surface words against a dictionary's morphological
rules: single-level affix derivation and compound-word grammars.
*/
package morph

import (
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/dictionary"
)

// Analyzer checks whether surface words derive from dictionary roots.
// Rule application is single-level (root plus one affix): the supported
// source format declares no flag cross-products, so chained application
// is deliberately not implemented.
type Analyzer struct {
	dict *dictionary.Dictionary
}

// NewAnalyzer creates an Analyzer over an immutable dictionary.
func NewAnalyzer(d *dictionary.Dictionary) *Analyzer {
	return &Analyzer{dict: d}
}

// IsValid reports whether word is a root verbatim or derives from a root
// through one affix rule. Matching is case-insensitive.
func (a *Analyzer) IsValid(word string) bool {
	w := utils.NormalizeWord(word)
	if w == "" {
		return false
	}
	if _, ok := a.dict.Lookup(w); ok {
		return true
	}
	return a.findRoot(w, nil)
}

// Roots returns every root entry the surface word derives from, the
// verbatim root first when present. Used by compound validation, which
// needs the licensing flags of each part.
func (a *Analyzer) Roots(word string) []dictionary.RootEntry {
	w := utils.NormalizeWord(word)
	if w == "" {
		return nil
	}
	var roots []dictionary.RootEntry
	seen := make(map[string]bool)
	if e, ok := a.dict.Lookup(w); ok {
		roots = append(roots, e)
		seen[e.Word] = true
	}
	a.findRoot(w, func(e dictionary.RootEntry) {
		if !seen[e.Word] {
			seen[e.Word] = true
			roots = append(roots, e)
		}
	})
	return roots
}

// findRoot walks the affix rules looking for a root the normalized word
// derives from. When collect is nil it stops at the first hit and reports
// it; otherwise it invokes collect for every derivation and returns whether
// any was found.
func (a *Analyzer) findRoot(w string, collect func(dictionary.RootEntry)) bool {
	found := false
	for i := range a.dict.AffixRules() {
		rule := &a.dict.AffixRules()[i]
		root, ok := recoverRoot(w, rule)
		if !ok {
			continue
		}
		entry, ok := a.dict.Lookup(root)
		if !ok || !entry.HasFlag(rule.Flag) || !rule.MatchesRoot(root) {
			continue
		}
		if collect == nil {
			return true
		}
		collect(entry)
		found = true
	}
	return found
}

// recoverRoot inverts a rule: remove its Add at the relevant boundary of the
// surface word and put Strip back. Returns false when the rule cannot have
// produced the word, or when the inversion would be a no-op identity (a rule
// with empty strip and add derives nothing new).
func recoverRoot(w string, rule *dictionary.AffixRule) (string, bool) {
	if rule.Add == "" && rule.Strip == "" {
		return "", false
	}
	if rule.Kind == dictionary.Suffix {
		if len(rule.Add) >= len(w) || w[len(w)-len(rule.Add):] != rule.Add {
			return "", false
		}
		return w[:len(w)-len(rule.Add)] + rule.Strip, true
	}
	if len(rule.Add) >= len(w) || w[:len(rule.Add)] != rule.Add {
		return "", false
	}
	return rule.Strip + w[len(rule.Add):], true
}

// Expand returns the finite set of surface forms a root entry licenses: the
// root itself plus one form per applicable affix rule. Duplicates are
// removed; order follows rule declaration order.
func (a *Analyzer) Expand(root dictionary.RootEntry) []string {
	forms := []string{root.Word}
	seen := map[string]bool{root.Word: true}
	for i := range a.dict.AffixRules() {
		rule := &a.dict.AffixRules()[i]
		if !root.HasFlag(rule.Flag) || !rule.MatchesRoot(root.Word) {
			continue
		}
		form, ok := rule.Apply(root.Word)
		if !ok || form == "" || seen[form] {
			continue
		}
		seen[form] = true
		forms = append(forms, form)
	}
	return forms
}
