// internal/httpserver/server.go
//
// HTTP server wiring for the magic-four-squared backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", puzzle views, play sessions, share codes.
//   - Editor endpoints (require editor JWT): mounted under /editor.
//   - JWT + cookie handling and the anonymous player cookie.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Play endpoints never return puzzle solutions; the share endpoints do,
//     since handing someone a share code is handing them the puzzle.
//   - The editor is a single password-protected principal, not a user table.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/noam-r/magic-four-squared/internal/riddle"
	"github.com/noam-r/magic-four-squared/internal/store"
	"github.com/noam-r/magic-four-squared/internal/words"
)

// Server bundles the router, session and puzzle stores, word lists for
// guess validation, and the riddle generator used by the editor.
type Server struct {
	r          *chi.Mux
	sessions   store.SessionStore
	puzzles    *store.PuzzleStore
	sets       map[words.Language]*words.Set
	riddles    *riddle.Generator
	salt       string
	editorHash []byte
}

// New constructs a Server, installs middleware, and registers routes.
// A nil riddle generator falls back to template-only clues.
func New(sessions store.SessionStore, puzzles *store.PuzzleStore, sets map[words.Language]*words.Set, riddles *riddle.Generator) *Server {
	if riddles == nil {
		riddles = riddle.NewGenerator(nil, riddle.NewTemplateProvider(0))
	}
	s := &Server{
		r:          chi.NewRouter(),
		sessions:   sessions,
		puzzles:    puzzles,
		sets:       sets,
		riddles:    riddles,
		salt:       getEnv("DAILY_SALT", "local_dev_salt"),
		editorHash: resolveEditorHash(),
	}
	if len(s.editorHash) == 0 {
		log.Warn().Msg("no EDITOR_PASSWORD_HASH or EDITOR_PASSWORD set; editor endpoints disabled")
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"magic-four-squared","endpoints":["/health","GET /puzzle/today","POST /play/new","POST /play/guess","POST /play/check","/share","/editor/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountPlay()
	s.mountEditor()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: loaded word list sizes per language
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		counts := map[string]int{}
		for lang, set := range s.sets {
			counts[string(lang)] = set.Len()
		}
		_ = json.NewEncoder(w).Encode(counts)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
