/*
Package dictionary loads and parses spell-check dictionaries.

A dictionary consists of a word list (one root word plus optional flag
annotations per line) and an affix-rule resource declaring prefix/suffix
transformations and compound grammars in the hunspell text format. The
Loader resolves a language code to raw bytes through a pluggable
ByteSource, retries transient failures, and produces an immutable
Dictionary ready for membership checks.
*/
package dictionary

import (
	"errors"
	"regexp"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/spellserve/internal/utils"
)

// AffixKind distinguishes prefix from suffix rules.
type AffixKind int

const (
	Prefix AffixKind = iota
	Suffix
)

func (k AffixKind) String() string {
	if k == Prefix {
		return "PFX"
	}
	return "SFX"
}

// AffixRule is a declarative transformation deriving a surface word from a
// root. It is licensed by Flag and gated by a boundary Condition matched
// against the root word.
type AffixRule struct {
	Kind      AffixKind
	Flag      string
	Strip     string
	Add       string
	Condition string

	cond *regexp.Regexp // nil when Condition is "." (always matches)
}

// MatchesRoot reports whether the rule's condition holds for the given root
// word. Suffix conditions anchor at the end of the root, prefix conditions
// at the start.
func (r *AffixRule) MatchesRoot(root string) bool {
	if r.cond == nil {
		return true
	}
	return r.cond.MatchString(root)
}

// Apply derives the surface form for a root, or returns ("", false) when the
// rule does not apply (flag and condition are checked by the caller).
func (r *AffixRule) Apply(root string) (string, bool) {
	if r.Kind == Suffix {
		if !strings.HasSuffix(root, r.Strip) {
			return "", false
		}
		return root[:len(root)-len(r.Strip)] + r.Add, true
	}
	if !strings.HasPrefix(root, r.Strip) {
		return "", false
	}
	return r.Add + root[len(r.Strip):], true
}

// RootEntry is a dictionary root word with the flags that license affix and
// compound rules to apply to it.
type RootEntry struct {
	Word  string
	Flags string
}

// HasFlag reports whether the entry carries the given flag identifier.
func (e RootEntry) HasFlag(flag string) bool {
	return strings.Contains(e.Flags, flag)
}

// compoundElem is a single class in a compound pattern: a flag plus an
// optional repetition modifier.
type compoundElem struct {
	flag byte
	mod  byte // 0, '*' or '?'
}

// CompoundRule describes a permitted concatenation of flagged word classes,
// e.g. "AB" or "A*B?C". Matching follows hunspell COMPOUNDRULE semantics.
type CompoundRule struct {
	Pattern string
	elems   []compoundElem
}

// MatchFlagSets reports whether the rule pattern can match the given
// sequence of per-part flag sets, choosing one licensing flag per part.
func (r *CompoundRule) MatchFlagSets(parts []string) bool {
	return r.matchFrom(0, parts)
}

func (r *CompoundRule) matchFrom(elem int, parts []string) bool {
	if elem == len(r.elems) {
		return len(parts) == 0
	}
	e := r.elems[elem]
	switch e.mod {
	case '*':
		if r.matchFrom(elem+1, parts) {
			return true
		}
		for i := 0; i < len(parts); i++ {
			if !strings.ContainsRune(parts[i], rune(e.flag)) {
				break
			}
			if r.matchFrom(elem+1, parts[i+1:]) {
				return true
			}
		}
		return false
	case '?':
		if r.matchFrom(elem+1, parts) {
			return true
		}
		if len(parts) > 0 && strings.ContainsRune(parts[0], rune(e.flag)) {
			return r.matchFrom(elem+1, parts[1:])
		}
		return false
	default:
		if len(parts) == 0 || !strings.ContainsRune(parts[0], rune(e.flag)) {
			return false
		}
		return r.matchFrom(elem+1, parts[1:])
	}
}

// Dictionary is the parsed, immutable representation of one language's
// word list and rules. It is rebuilt wholesale on reload, never mutated.
type Dictionary struct {
	language      string
	roots         map[string]RootEntry
	affixRules    []AffixRule
	compoundRules []CompoundRule
	alphabet      []rune
	index         *patricia.Trie
	fallback      bool
}

// Language returns the language code the dictionary was loaded for.
func (d *Dictionary) Language() string { return d.language }

// WordCount returns the number of root entries.
func (d *Dictionary) WordCount() int { return len(d.roots) }

// IsFallback reports whether this is the built-in seed dictionary
// substituted after a failed load.
func (d *Dictionary) IsFallback() bool { return d.fallback }

// AffixRules returns the parsed affix rules in declaration order.
func (d *Dictionary) AffixRules() []AffixRule { return d.affixRules }

// CompoundRules returns the parsed compound rules in declaration order.
func (d *Dictionary) CompoundRules() []CompoundRule { return d.compoundRules }

// HasCompoundRules reports whether any compound grammar was declared.
func (d *Dictionary) HasCompoundRules() bool { return len(d.compoundRules) > 0 }

// Alphabet returns the suggestion alphabet: the TRY declaration when the
// affix file carries one, otherwise lowercase ASCII.
func (d *Dictionary) Alphabet() []rune { return d.alphabet }

// Lookup returns the root entry for a normalized word.
func (d *Dictionary) Lookup(word string) (RootEntry, bool) {
	e, ok := d.roots[word]
	return e, ok
}

// VisitRootPrefixes visits every root that is a prefix of word, shortest
// first. The visitor returns false to stop early.
func (d *Dictionary) VisitRootPrefixes(word string, visit func(root RootEntry) bool) {
	_ = d.index.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, item patricia.Item) error {
		if !visit(item.(RootEntry)) {
			return errStopVisit
		}
		return nil
	})
}

// errStopVisit aborts patricia visits early.
var errStopVisit = errors.New("stop visit")

// newDictionary builds the immutable dictionary from parsed parts.
func newDictionary(lang string, roots map[string]RootEntry, affix []AffixRule, compound []CompoundRule, alphabet []rune, fallback bool) *Dictionary {
	index := patricia.NewTrie()
	for _, e := range roots {
		index.Insert(patricia.Prefix(e.Word), e)
	}
	if len(alphabet) == 0 {
		alphabet = []rune("abcdefghijklmnopqrstuvwxyz")
	}
	return &Dictionary{
		language:      lang,
		roots:         roots,
		affixRules:    affix,
		compoundRules: compound,
		alphabet:      alphabet,
		index:         index,
		fallback:      fallback,
	}
}

// normalizeRoot applies the shared word normalization to a root word.
func normalizeRoot(word string) string {
	return utils.NormalizeWord(word)
}
