package dictionary

// OutcomeKind tags how a language load settled.
type OutcomeKind int

const (
	// OutcomeLoaded means the real dictionary was fetched and parsed.
	OutcomeLoaded OutcomeKind = iota
	// OutcomeFallback means loading failed and the built-in seed
	// dictionary was substituted.
	OutcomeFallback
	// OutcomeFailed means loading failed and no dictionary is available.
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeFallback:
		return "fallback"
	default:
		return "failed"
	}
}

// Outcome is the tagged result of a load attempt sequence, so callers can
// distinguish a real dictionary from a degraded fallback.
type Outcome struct {
	Kind OutcomeKind
	Dict *Dictionary
	Err  error
}

// Loaded wraps a successfully loaded dictionary.
func Loaded(d *Dictionary) Outcome { return Outcome{Kind: OutcomeLoaded, Dict: d} }

// FallbackOutcome wraps a substituted seed dictionary plus the error that
// caused the substitution.
func FallbackOutcome(d *Dictionary, err error) Outcome {
	return Outcome{Kind: OutcomeFallback, Dict: d, Err: err}
}

// Failed wraps a load failure with no dictionary.
func Failed(err error) Outcome { return Outcome{Kind: OutcomeFailed, Err: err} }
