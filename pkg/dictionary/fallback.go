package dictionary

// seedWords is the minimal built-in word list used when a real dictionary
// cannot be loaded after retries. No affix or compound rules apply.
var seedWords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "as", "at",
	"back", "be", "because", "but", "by", "can", "come", "could", "day",
	"do", "even", "first", "for", "from", "get", "give", "go", "good",
	"have", "he", "her", "him", "his", "how", "i", "if", "in", "into",
	"it", "its", "just", "know", "like", "look", "make", "me", "most",
	"my", "new", "no", "not", "now", "of", "on", "one", "only", "or",
	"other", "our", "out", "over", "people", "say", "see", "she", "so",
	"some", "take", "than", "that", "the", "their", "them", "then",
	"there", "these", "they", "think", "this", "time", "to", "two", "up",
	"us", "use", "want", "way", "we", "well", "what", "when", "which",
	"who", "will", "with", "work", "would", "year", "you", "your",
}

// NewFallback builds the built-in seed dictionary for a language. It keeps
// the service answering checks in a degraded mode after load exhaustion.
func NewFallback(lang string) *Dictionary {
	roots := make(map[string]RootEntry, len(seedWords))
	for _, w := range seedWords {
		roots[w] = RootEntry{Word: w}
	}
	return newDictionary(lang, roots, nil, nil, nil, true)
}
