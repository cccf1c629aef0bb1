package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Parse builds a Dictionary from raw affix-rule and word-list bytes.
//
// The affix resource uses the hunspell text format:
//
//	TRY esianrtolcdugmphbyfvkwz
//	PFX A Y 1
//	PFX A 0 re .
//	SFX S Y 2
//	SFX S y ies [^aeiou]y
//	SFX S 0 s [aeiou]y
//	COMPOUNDRULE 1
//	COMPOUNDRULE AB*
//
// The word list carries an optional leading entry count followed by one
// "word/FLAGS" entry per line. Malformed rule lines are skipped with a
// warning; an empty word list is an error.
func Parse(lang string, affix, words []byte) (*Dictionary, error) {
	affixRules, compoundRules, alphabet := parseAffix(lang, affix)

	roots, err := parseWords(words)
	if err != nil {
		return nil, fmt.Errorf("parse %s word list: %w", lang, err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("parse %s word list: no entries", lang)
	}

	log.Debugf("Parsed %s: %d roots, %d affix rules, %d compound rules",
		lang, len(roots), len(affixRules), len(compoundRules))

	return newDictionary(lang, roots, affixRules, compoundRules, alphabet, false), nil
}

// parseAffix scans the affix resource for PFX/SFX/COMPOUNDRULE/TRY lines.
// Rule group headers (flag, cross-product marker, count) are consumed and
// discarded; only the rule bodies matter for validation.
func parseAffix(lang string, data []byte) ([]AffixRule, []CompoundRule, []rune) {
	var (
		rules    []AffixRule
		compound []CompoundRule
		alphabet []rune
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "TRY":
			if len(fields) >= 2 {
				alphabet = []rune(strings.ToLower(fields[1]))
			}
		case "PFX", "SFX":
			kind := Suffix
			if fields[0] == "PFX" {
				kind = Prefix
			}
			// Group header: PFX <flag> <Y|N> <count>
			if len(fields) == 4 {
				if _, err := strconv.Atoi(fields[3]); err == nil {
					continue
				}
			}
			if len(fields) < 4 {
				log.Warnf("Skipping malformed %s rule in %s: %q", fields[0], lang, line)
				continue
			}
			rule, err := buildAffixRule(kind, fields)
			if err != nil {
				log.Warnf("Skipping %s rule in %s: %v", kind, lang, err)
				continue
			}
			rules = append(rules, rule)
		case "COMPOUNDRULE":
			if len(fields) < 2 {
				continue
			}
			// Count header: COMPOUNDRULE <n>
			if _, err := strconv.Atoi(fields[1]); err == nil {
				continue
			}
			rule, err := buildCompoundRule(fields[1])
			if err != nil {
				log.Warnf("Skipping COMPOUNDRULE in %s: %v", lang, err)
				continue
			}
			compound = append(compound, rule)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warnf("Reading %s affix rules stopped early: %v", lang, err)
	}

	return rules, compound, alphabet
}

// buildAffixRule assembles a rule from "PFX/SFX flag strip add [condition]"
// fields. "0" means an empty strip/add string; a missing or "." condition
// always matches. Continuation flags after "/" in the add field are ignored:
// rule application is single-level.
func buildAffixRule(kind AffixKind, fields []string) (AffixRule, error) {
	rule := AffixRule{
		Kind: kind,
		Flag: fields[1],
	}
	if fields[2] != "0" {
		rule.Strip = strings.ToLower(fields[2])
	}
	add := fields[3]
	if i := strings.IndexByte(add, '/'); i >= 0 {
		add = add[:i]
	}
	if add != "0" {
		rule.Add = strings.ToLower(add)
	}
	rule.Condition = "."
	if len(fields) >= 5 {
		rule.Condition = fields[4]
	}
	if rule.Condition != "." {
		pattern := strings.ToLower(rule.Condition)
		if kind == Suffix {
			pattern += "$"
		} else {
			pattern = "^" + pattern
		}
		cond, err := regexp.Compile(pattern)
		if err != nil {
			return AffixRule{}, fmt.Errorf("condition %q: %w", rule.Condition, err)
		}
		rule.cond = cond
	}
	return rule, nil
}

// buildCompoundRule parses a flag-class pattern such as "AB", "A*B" or "AB?C".
func buildCompoundRule(pattern string) (CompoundRule, error) {
	var elems []compoundElem
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '*' || c == '?' {
			return CompoundRule{}, fmt.Errorf("pattern %q: dangling modifier", pattern)
		}
		elem := compoundElem{flag: c}
		if i+1 < len(pattern) && (pattern[i+1] == '*' || pattern[i+1] == '?') {
			elem.mod = pattern[i+1]
			i++
		}
		elems = append(elems, elem)
	}
	if len(elems) == 0 {
		return CompoundRule{}, fmt.Errorf("empty pattern")
	}
	return CompoundRule{Pattern: pattern, elems: elems}, nil
}

// parseWords scans the word list. Roots are stored normalized; duplicate
// entries merge their flag sets.
func parseWords(data []byte) (map[string]RootEntry, error) {
	roots := make(map[string]RootEntry)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Optional leading entry count.
		if first {
			first = false
			if _, err := strconv.Atoi(line); err == nil {
				continue
			}
		}

		word, flags := line, ""
		if i := strings.IndexByte(line, '/'); i >= 0 {
			word, flags = line[:i], line[i+1:]
		}
		word = normalizeRoot(word)
		if word == "" {
			continue
		}

		if existing, ok := roots[word]; ok {
			flags = mergeFlags(existing.Flags, flags)
		}
		roots[word] = RootEntry{Word: word, Flags: flags}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return roots, nil
}

// mergeFlags unions two flag strings, preserving first-seen order.
func mergeFlags(a, b string) string {
	merged := a
	for _, r := range b {
		if !strings.ContainsRune(merged, r) {
			merged += string(r)
		}
	}
	return merged
}
