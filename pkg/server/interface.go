/*
Package server implements msgpack IPC for the spell-checking service.

The server reads binary msgpack messages from stdin and writes responses to
stdout, one message per request, processed synchronously with timing info
included. Logs go to stderr so the protocol stream stays clean.

# Message Types

Every request carries an id, an action, and action-specific fields:

	{"id": "req_001", "action": "check", "w": "helo", "lang": "en-US"}
	{"id": "req_002", "action": "suggest", "w": "helo", "l": 5}
	{"id": "req_003", "action": "load", "lang": "fr-FR"}
	{"id": "req_004", "action": "langs"}
	{"id": "req_005", "action": "stats", "lang": "en-US"}
	{"id": "req_006", "action": "health"}

Check responses report correctness; suggest responses carry the ranked
corrections. Stats responses combine dictionary and cache counters. A
failed operation yields an error response with a code and message.
*/
package server

// Request is the envelope for every incoming message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Word   string `msgpack:"w,omitempty"`
	Lang   string `msgpack:"lang,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CheckResponse answers a "check" request.
type CheckResponse struct {
	ID        string `msgpack:"id"`
	Correct   bool   `msgpack:"ok"`
	Lang      string `msgpack:"lang"`
	TimeTaken int64  `msgpack:"t"`
}

// SuggestResponse answers a "suggest" request.
type SuggestResponse struct {
	ID          string   `msgpack:"id"`
	Suggestions []string `msgpack:"s"`
	Count       int      `msgpack:"c"`
	Lang        string   `msgpack:"lang"`
	TimeTaken   int64    `msgpack:"t"`
}

// LanguagesResponse answers a "langs" request with loaded language codes.
type LanguagesResponse struct {
	ID        string   `msgpack:"id"`
	Languages []string `msgpack:"langs"`
}

// StatsResponse answers a "stats" request.
type StatsResponse struct {
	ID            string `msgpack:"id"`
	Lang          string `msgpack:"lang"`
	WordCount     int    `msgpack:"words"`
	IsFallback    bool   `msgpack:"fallback"`
	CacheSize     int    `msgpack:"cache_size"`
	CacheCapacity int    `msgpack:"cache_cap"`
	CacheHits     uint64 `msgpack:"cache_hits"`
	CacheMisses   uint64 `msgpack:"cache_misses"`
}

// StatusResponse signals readiness and answers "load" and "health".
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
