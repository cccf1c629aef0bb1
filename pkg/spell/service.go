/*
Package spell provides the spell-checking service: multi-language dictionary
coordination, result caching, and suggestion delegation.

A Checker owns one dictionary per loaded language. Concurrent requests for
a not-yet-loaded language share a single underlying load; check results are
cached in a bounded LRU keyed by (language, normalized word).
*/
package spell

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/bastiangx/spellserve/pkg/morph"
	"github.com/bastiangx/spellserve/pkg/suggest"
)

// State is the checker lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// DictStats describes one loaded language's dictionary.
type DictStats struct {
	Language   string
	WordCount  int
	IsFallback bool
}

// langEntry bundles a settled load outcome with the engines built over its
// dictionary. Entries are immutable once stored.
type langEntry struct {
	outcome   dictionary.Outcome
	analyzer  *morph.Analyzer
	compound  *morph.CompoundChecker
	generator *suggest.Generator
}

// Checker is the public spell-checking service. Safe for concurrent use.
//
// Load policy: the default language failing during Initialize is fatal and
// surfaces as *InitializationError. Any other language substitutes the
// built-in fallback dictionary with a logged warning when fallback_on_error
// is set (the default); with it unset the load error surfaces to the caller
// and the language stays unloaded.
type Checker struct {
	loader          *dictionary.Loader
	cache           *ResultCache
	defaultLang     string
	preload         []string
	fallbackOnError bool
	maxSuggestions  int

	mu    sync.RWMutex
	state State
	langs map[string]*langEntry

	group singleflight.Group
}

// New creates a Checker from config and a dictionary byte source. Call
// Initialize before checking words.
func New(cfg *config.Config, source dictionary.ByteSource) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache, err := NewResultCache(cfg.Spell.CacheSize)
	if err != nil {
		return nil, err
	}
	loader := dictionary.NewLoader(source, cfg.Spell.DictionaryPath,
		cfg.Spell.MaxRetries, cfg.RetryDelay(), cfg.BackoffPolicy())
	return &Checker{
		loader:          loader,
		cache:           cache,
		defaultLang:     cfg.Spell.DefaultLanguage,
		preload:         cfg.Spell.PreloadLanguages,
		fallbackOnError: cfg.Spell.FallbackOnError,
		maxSuggestions:  cfg.Spell.MaxSuggestions,
		langs:           make(map[string]*langEntry),
	}, nil
}

// State returns the lifecycle state.
func (c *Checker) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Initialize loads the default language and, concurrently, every distinct
// preload language. It transitions to Ready only when the default language
// loads; preload failures are degraded to fallbacks (or logged) and never
// block readiness.
func (c *Checker) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUninitialized {
		c.mu.Unlock()
		return nil
	}
	c.state = StateInitializing
	c.mu.Unlock()

	if _, err := c.load(ctx, c.defaultLang); err != nil {
		c.mu.Lock()
		c.state = StateUninitialized
		c.mu.Unlock()
		return &InitializationError{Language: c.defaultLang, Err: err}
	}

	var wg sync.WaitGroup
	seen := map[string]bool{c.defaultLang: true}
	for _, lang := range c.preload {
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		wg.Add(1)
		go func(lang string) {
			defer wg.Done()
			if _, err := c.load(ctx, lang); err != nil {
				log.Warnf("Preload of %s failed: %v", lang, err)
			}
		}(lang)
	}
	wg.Wait()

	c.mu.Lock()
	c.state = StateReady
	c.mu.Unlock()
	log.Debugf("Checker ready, default language %s", c.defaultLang)
	return nil
}

// LoadLanguage ensures lang's dictionary is loaded. A language already
// loading is awaited, not re-fetched; all concurrent callers receive the
// same outcome.
func (c *Checker) LoadLanguage(ctx context.Context, lang string) error {
	if lang == "" {
		lang = c.defaultLang
	}
	_, err := c.load(ctx, lang)
	return err
}

// Reload drops lang's dictionary and loads it fresh. The dictionary is
// rebuilt wholesale; checks observe either the old or the new one, never a
// partial state.
func (c *Checker) Reload(ctx context.Context, lang string) error {
	if lang == "" {
		lang = c.defaultLang
	}
	c.mu.Lock()
	delete(c.langs, lang)
	c.mu.Unlock()
	c.cache.Purge()
	_, err := c.load(ctx, lang)
	return err
}

// Check reports whether word is spelled correctly in the given language
// (default when empty). Case-insensitive. Fails with ErrInvalidWord on
// empty input.
func (c *Checker) Check(ctx context.Context, word, lang string) (bool, error) {
	if strings.TrimSpace(word) == "" {
		return false, ErrInvalidWord
	}
	if c.State() == StateUninitialized {
		return false, ErrNotInitialized
	}
	lang = c.resolve(lang)
	entry, err := c.load(ctx, lang)
	if err != nil {
		return false, err
	}

	norm := utils.NormalizeWord(word)
	if correct, ok := c.cache.Get(lang, norm); ok {
		return correct, nil
	}

	correct := entry.analyzer.IsValid(norm) ||
		(entry.compound != nil && entry.compound.IsValidCompound(norm))
	c.cache.Put(lang, norm, correct)
	return correct, nil
}

// Suggest returns ranked corrections for word in the given language. A word
// that is already correct yields an empty slice. Suggestions bypass the
// result cache.
func (c *Checker) Suggest(ctx context.Context, word, lang string) ([]string, error) {
	if strings.TrimSpace(word) == "" {
		return nil, ErrInvalidWord
	}
	if c.State() == StateUninitialized {
		return nil, ErrNotInitialized
	}
	lang = c.resolve(lang)
	entry, err := c.load(ctx, lang)
	if err != nil {
		return nil, err
	}
	return entry.generator.Suggest(word, c.maxSuggestions), nil
}

// AvailableLanguages returns the sorted codes of every loaded language,
// fallbacks included.
func (c *Checker) AvailableLanguages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	langs := make([]string, 0, len(c.langs))
	for lang := range c.langs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DictionaryStats returns word count and fallback status for a loaded
// language (default when empty).
func (c *Checker) DictionaryStats(lang string) (DictStats, error) {
	lang = c.resolve(lang)
	c.mu.RLock()
	entry, ok := c.langs[lang]
	c.mu.RUnlock()
	if !ok {
		return DictStats{}, errors.New("spell: language " + lang + " not loaded")
	}
	return DictStats{
		Language:   lang,
		WordCount:  entry.outcome.Dict.WordCount(),
		IsFallback: entry.outcome.Dict.IsFallback(),
	}, nil
}

// CacheStats returns the result cache's occupancy and hit counters.
func (c *Checker) CacheStats() CacheStats {
	return c.cache.Stats()
}

func (c *Checker) resolve(lang string) string {
	if lang == "" {
		return c.defaultLang
	}
	return lang
}

// load returns the settled entry for lang, deduplicating concurrent loads
// through a singleflight group keyed by language code. The in-flight handle
// is cleared unconditionally when Do returns, success or failure.
func (c *Checker) load(ctx context.Context, lang string) (*langEntry, error) {
	c.mu.RLock()
	entry, ok := c.langs[lang]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	v, err, _ := c.group.Do(lang, func() (any, error) {
		// Another flight may have settled between the fast path and here.
		c.mu.RLock()
		entry, ok := c.langs[lang]
		c.mu.RUnlock()
		if ok {
			return entry, nil
		}

		outcome := c.loadOutcome(ctx, lang)
		if outcome.Kind == dictionary.OutcomeFailed {
			return nil, outcome.Err
		}
		log.Debugf("Language %s settled: %s", lang, outcome.Kind)
		entry = newLangEntry(outcome)

		c.mu.Lock()
		c.langs[lang] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*langEntry), nil
}

// loadOutcome runs the loader and applies the per-role exhaustion policy.
func (c *Checker) loadOutcome(ctx context.Context, lang string) dictionary.Outcome {
	dict, err := c.loader.Load(ctx, lang)
	if err == nil {
		return dictionary.Loaded(dict)
	}
	if lang != c.defaultLang && c.fallbackOnError &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Warnf("Substituting fallback dictionary for %s: %v", lang, err)
		return dictionary.FallbackOutcome(dictionary.NewFallback(lang), err)
	}
	return dictionary.Failed(err)
}

func newLangEntry(outcome dictionary.Outcome) *langEntry {
	d := outcome.Dict
	analyzer := morph.NewAnalyzer(d)
	var compound *morph.CompoundChecker
	if d.HasCompoundRules() {
		compound = morph.NewCompoundChecker(d, analyzer)
	}
	return &langEntry{
		outcome:   outcome,
		analyzer:  analyzer,
		compound:  compound,
		generator: suggest.NewGenerator(d, analyzer, compound),
	}
}
