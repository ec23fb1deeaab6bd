// internal/httpserver/routes_editor.go
//
// HTTP routes for the puzzle editor. All of these sit behind the editor
// JWT (see auth.go):
//   - POST /editor/login        → password → token cookie
//   - POST /editor/logout       → clear the cookie
//   - GET  /editor/me           → confirms the token still works
//   - POST /editor/validate     → structured violations for a draft grid
//   - POST /editor/puzzle       → validate, fill missing riddles, store
//   - GET  /editor/puzzle/{id}  → full puzzle document, solution included
//   - GET  /editor/puzzles      → published catalog in rotation order
//
// Validation always answers 200 with the violation list; a draft full of
// mistakes is a normal editing state, not an error.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/noam-r/magic-four-squared/internal/puzzle"
	"github.com/noam-r/magic-four-squared/internal/riddle"
	"github.com/noam-r/magic-four-squared/internal/square"
	"github.com/noam-r/magic-four-squared/internal/words"
)

// mountEditor registers login plus the gated editor routes.
func (s *Server) mountEditor() {
	s.r.Post("/editor/login", s.handleEditorLogin)
	s.r.Post("/editor/logout", s.handleEditorLogout)

	s.r.With(s.requireEditor()).Get("/editor/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"role": "editor"})
	})
	s.r.With(s.requireEditor()).Post("/editor/validate", s.handleEditorValidate)
	s.r.With(s.requireEditor()).Post("/editor/puzzle", s.handleEditorCreate)
	s.r.With(s.requireEditor()).Get("/editor/puzzle/{id}", s.handleEditorGet)
	s.r.With(s.requireEditor()).Get("/editor/puzzles", s.handleEditorList)
}

// --------------------------- /editor/validate ------------------------------

// validateReq/Res payloads for POST /editor/validate. Grid cells are
// strings; "" marks a cell the editor has not filled yet.
type validateReq struct {
	Language string     `json:"language"`
	Grid     [][]string `json:"grid"`
}
type validateRes struct {
	Valid      bool               `json:"valid"`
	Violations []square.Violation `json:"violations"`
}

// handleEditorValidate checks a draft grid and reports every violation.
func (s *Server) handleEditorValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	lang, set, ok := s.langSet(w, req.Language)
	if !ok {
		return
	}
	g, err := gridFromCells(lang, req.Grid)
	if err != nil {
		http.Error(w, `{"error":"bad_cell"}`, http.StatusBadRequest)
		return
	}

	vs := square.Check(g, set)
	if vs == nil {
		vs = []square.Violation{}
	}
	_ = json.NewEncoder(w).Encode(validateRes{Valid: len(vs) == 0, Violations: vs})
}

// ---------------------------- /editor/puzzle -------------------------------

// createReq is the payload for POST /editor/puzzle. Words are the square's
// rows in order. Riddles, when present, align with words; empty entries
// are filled by the riddle generator.
type createReq struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
	Riddles  []string `json:"riddles"`
}

// handleEditorCreate validates the words as a square, completes the
// riddle list, and stores the puzzle as published.
func (s *Server) handleEditorCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	lang, err := words.ParseLanguage(orEnglish(req.Language))
	if err != nil {
		http.Error(w, `{"error":"unknown_language"}`, http.StatusBadRequest)
		return
	}
	size := len(req.Words)
	if size < 2 {
		http.Error(w, `{"error":"too_few_words"}`, http.StatusBadRequest)
		return
	}
	if len(req.Riddles) != 0 && len(req.Riddles) != size {
		http.Error(w, `{"error":"riddles_mismatch"}`, http.StatusBadRequest)
		return
	}

	rows := make([]string, size)
	for i, word := range req.Words {
		rows[i] = words.Normalize(lang, word)
	}

	// The rows must form a symmetric square over themselves; report the
	// failures the same way /editor/validate does.
	set, err := words.NewSet(rows, size)
	if err != nil {
		http.Error(w, `{"error":"length_mismatch"}`, http.StatusBadRequest)
		return
	}
	g := square.GridFromRows(rows)
	if vs := square.Check(g, set); len(vs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(validateRes{Valid: false, Violations: vs})
		return
	}

	riddles := s.completeRiddles(r, lang, rows, req.Riddles)

	p, err := puzzle.New(lang, square.Square{Grid: g, Words: rows}, riddles)
	if err != nil {
		http.Error(w, `{"error":"invalid_puzzle"}`, http.StatusBadRequest)
		return
	}
	if err := s.puzzles.Save(r.Context(), p, true); err != nil {
		log.Error().Err(err).Str("puzzle", p.ID).Msg("save puzzle")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("puzzle", p.ID).Str("language", string(lang)).Msg("editor puzzle created")
	_ = json.NewEncoder(w).Encode(p)
}

// completeRiddles keeps the editor's clue texts and generates clues for
// the rows left blank.
func (s *Server) completeRiddles(r *http.Request, lang words.Language, rows []string, texts []string) []riddle.Riddle {
	out := make([]riddle.Riddle, len(rows))
	var missing []string
	var missingAt []int
	for i, word := range rows {
		t := ""
		if i < len(texts) {
			t = strings.TrimSpace(texts[i])
		}
		if t != "" {
			out[i] = riddle.Riddle{Word: word, Text: t, Source: riddle.SourceEditor}
			continue
		}
		missing = append(missing, word)
		missingAt = append(missingAt, i)
	}
	if len(missing) > 0 {
		generated := s.riddles.ForWords(r.Context(), lang, missing)
		for k, i := range missingAt {
			out[i] = generated[k]
		}
	}
	return out
}

// handleEditorGet returns the full stored document, solution included.
func (s *Server) handleEditorGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.puzzles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

// handleEditorList returns the published catalog in rotation order. Index
// i of the list is the puzzle the daily pick serves when the date hashes
// to offset i.
func (s *Server) handleEditorList(w http.ResponseWriter, r *http.Request) {
	list, err := s.puzzles.ListPublished(r.Context())
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"count": len(list), "puzzles": list})
}

// langSet resolves the request language and its loaded word list,
// answering the error itself when either is unknown.
func (s *Server) langSet(w http.ResponseWriter, raw string) (words.Language, *words.Set, bool) {
	lang, err := words.ParseLanguage(orEnglish(raw))
	if err != nil {
		http.Error(w, `{"error":"unknown_language"}`, http.StatusBadRequest)
		return "", nil, false
	}
	set := s.sets[lang]
	if set == nil {
		http.Error(w, `{"error":"no_word_list"}`, http.StatusBadRequest)
		return "", nil, false
	}
	return lang, set, true
}

// orEnglish defaults an empty language field to "en".
func orEnglish(raw string) string {
	if raw == "" {
		return "en"
	}
	return raw
}
