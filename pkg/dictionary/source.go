package dictionary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by a ByteSource when no dictionary exists for the
// requested locator. It is never retried.
var ErrNotFound = errors.New("dictionary: language not found")

// Files holds the raw resources a ByteSource resolves for one language.
type Files struct {
	Affix []byte
	Words []byte
}

// ByteSource resolves a locator (a path template with the language code
// substituted in) to raw dictionary bytes. Implementations report a missing
// language with an error wrapping ErrNotFound; any other error is treated
// as transient and retried by the Loader.
type ByteSource interface {
	Fetch(ctx context.Context, locator string) (Files, error)
}

// DirSource reads <locator>.aff and <locator>.dic relative to a root
// directory. A missing word list means the language does not exist; a
// missing affix file is tolerated and yields a rule-less dictionary.
type DirSource struct {
	Root string
}

// NewDirSource creates a disk-backed ByteSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Root: dir}
}

// Fetch implements ByteSource.
func (s *DirSource) Fetch(ctx context.Context, locator string) (Files, error) {
	if err := ctx.Err(); err != nil {
		return Files{}, err
	}

	base := filepath.Join(s.Root, filepath.FromSlash(locator))

	words, err := os.ReadFile(base + ".dic")
	if err != nil {
		if os.IsNotExist(err) {
			return Files{}, fmt.Errorf("%w: %s", ErrNotFound, locator)
		}
		return Files{}, fmt.Errorf("read word list %s.dic: %w", base, err)
	}

	affix, err := os.ReadFile(base + ".aff")
	if err != nil {
		if !os.IsNotExist(err) {
			return Files{}, fmt.Errorf("read affix rules %s.aff: %w", base, err)
		}
		log.Debugf("No affix file at %s.aff, continuing without rules", base)
		affix = nil
	}

	return Files{Affix: affix, Words: words}, nil
}
