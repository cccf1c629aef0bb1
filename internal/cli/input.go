// Package cli handles cmd line input for checking words interactively,
// for DBG and testing dictionary behavior.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/spell"
)

// InputHandler processes words from stdin, reporting correctness and
// suggestions for each.
type InputHandler struct {
	checker      *spell.Checker
	lang         string
	suggestLimit int
	maxWordLen   int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(checker *spell.Checker, lang string, suggestLimit, maxWordLen int) *InputHandler {
	return &InputHandler{
		checker:      checker,
		lang:         lang,
		suggestLimit: suggestLimit,
		maxWordLen:   maxWordLen,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and checks
// each whitespace-separated word. Loop terminates on stdin EOF or error.
func (h *InputHandler) Start(ctx context.Context) error {
	log.Print("SpellServe CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word and press Enter to check it (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		for _, word := range strings.Fields(line) {
			h.handleWord(ctx, word)
		}
	}
}

// handleWord checks a single word and prints suggestions when misspelled.
func (h *InputHandler) handleWord(ctx context.Context, word string) {
	if len(word) > h.maxWordLen {
		log.Errorf("Word too long: %s", word)
		return
	}
	if !utils.IsValidInput(word) {
		log.Warnf("Skipping non-word input: '%s'", word)
		return
	}

	start := time.Now()
	correct, err := h.checker.Check(ctx, word, h.lang)
	if err != nil {
		log.Errorf("Check failed for '%s': %v", word, err)
		return
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if correct {
		log.Printf("'%s' is spelled correctly", word)
		return
	}

	suggestions, err := h.checker.Suggest(ctx, word, h.lang)
	if err != nil {
		log.Errorf("Suggest failed for '%s': %v", word, err)
		return
	}
	if len(suggestions) == 0 {
		log.Warnf("'%s' is misspelled, no suggestions found", word)
		return
	}

	log.Printf("'%s' is misspelled, %d suggestions:", word, len(suggestions))
	limit := h.suggestLimit
	if limit > len(suggestions) {
		limit = len(suggestions)
	}
	for i, s := range suggestions[:limit] {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s)
		log.Printf("%2d. %s", i+1, clWord)
	}
}
