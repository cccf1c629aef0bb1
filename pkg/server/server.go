package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/spell"
)

// Server handles the msgpack IPC for spell checking.
type Server struct {
	checker *spell.Checker
	cfg     *config.Config
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a spell-check server using stdin/stdout for IPC.
func NewServer(checker *spell.Checker, cfg *config.Config) *Server {
	return NewServerIO(checker, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server over explicit streams, mainly for tests.
func NewServerIO(checker *spell.Checker, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		checker: checker,
		cfg:     cfg,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
		log:     logger.New("ipc"),
	}
}

// Start begins the synchronous request loop. It returns nil when the input
// stream closes.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting spell server")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handle(ctx, req)
	}
}

func (s *Server) handle(ctx context.Context, req Request) {
	switch req.Action {
	case "check":
		s.handleCheck(ctx, req)
	case "suggest":
		s.handleSuggest(ctx, req)
	case "load":
		s.handleLoad(ctx, req)
	case "langs":
		s.send(LanguagesResponse{ID: req.ID, Languages: s.checker.AvailableLanguages()})
	case "stats":
		s.handleStats(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleCheck(ctx context.Context, req Request) {
	if !s.validWord(req) {
		return
	}
	start := time.Now()
	correct, err := s.checker.Check(ctx, req.Word, req.Lang)
	if err != nil {
		s.sendCheckerError(req.ID, err)
		return
	}
	s.send(CheckResponse{
		ID:        req.ID,
		Correct:   correct,
		Lang:      s.langOf(req),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleSuggest(ctx context.Context, req Request) {
	if !s.validWord(req) {
		return
	}
	start := time.Now()
	suggestions, err := s.checker.Suggest(ctx, req.Word, req.Lang)
	if err != nil {
		s.sendCheckerError(req.ID, err)
		return
	}
	if limit := s.limitOf(req); len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		Lang:        s.langOf(req),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleLoad(ctx context.Context, req Request) {
	if req.Lang == "" {
		s.sendError(req.ID, "missing 'lang' parameter", 400)
		return
	}
	if err := s.checker.LoadLanguage(ctx, req.Lang); err != nil {
		s.sendCheckerError(req.ID, err)
		return
	}
	s.send(StatusResponse{ID: req.ID, Status: "loaded"})
}

func (s *Server) handleStats(req Request) {
	dict, err := s.checker.DictionaryStats(req.Lang)
	if err != nil {
		s.sendCheckerError(req.ID, err)
		return
	}
	cache := s.checker.CacheStats()
	s.send(StatsResponse{
		ID:            req.ID,
		Lang:          dict.Language,
		WordCount:     dict.WordCount,
		IsFallback:    dict.IsFallback,
		CacheSize:     cache.Size,
		CacheCapacity: cache.Capacity,
		CacheHits:     cache.Hits,
		CacheMisses:   cache.Misses,
	})
}

// validWord enforces the protocol-level word constraints before the checker
// sees the request.
func (s *Server) validWord(req Request) bool {
	if req.Word == "" {
		s.sendError(req.ID, "missing 'w' parameter", 400)
		return false
	}
	if maxLen := s.cfg.Server.MaxWordLength; maxLen > 0 && len(req.Word) > maxLen {
		s.sendError(req.ID, fmt.Sprintf("word exceeds maximum length of %d", maxLen), 400)
		return false
	}
	return true
}

func (s *Server) langOf(req Request) string {
	if req.Lang != "" {
		return req.Lang
	}
	return s.cfg.Spell.DefaultLanguage
}

func (s *Server) limitOf(req Request) int {
	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	return limit
}

func (s *Server) sendCheckerError(id string, err error) {
	code := 500
	if errors.Is(err, spell.ErrInvalidWord) || errors.Is(err, spell.ErrNotInitialized) {
		code = 400
	}
	s.sendError(id, err.Error(), code)
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.log.Debugf("Request %s failed (%d): %s", id, code, message)
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
