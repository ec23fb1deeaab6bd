// internal/httpserver/routes_play.go
//
// HTTP routes for playing puzzles.
//   - GET  /puzzle/today        → today's puzzle, solution withheld
//   - GET  /puzzle/{id}         → any stored puzzle, solution withheld
//   - POST /play/new            → start a play session
//   - POST /play/guess          → word-mode marks for one row's answer
//   - POST /play/check          → grid-mode marks for the whole grid
//   - GET  /daily/leaderboard   → fastest solves of a day's puzzle
//   - POST /share               → share code for a stored puzzle
//   - GET  /share/{code}        → decode a share code to a full puzzle
//
// The daily puzzle is picked deterministically from the published list by
// date + salt, so every instance with the same DAILY_SALT serves the same
// puzzle. Sessions live in memory; solves are persisted to the results
// table (best effort, first finish per player stands).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/noam-r/magic-four-squared/internal/daily"
	"github.com/noam-r/magic-four-squared/internal/feedback"
	"github.com/noam-r/magic-four-squared/internal/puzzle"
	"github.com/noam-r/magic-four-squared/internal/square"
	"github.com/noam-r/magic-four-squared/internal/store"
	"github.com/noam-r/magic-four-squared/internal/words"
)

// mountPlay registers the public play routes.
func (s *Server) mountPlay() {
	s.r.Get("/puzzle/today", s.handlePuzzleToday)
	s.r.Get("/puzzle/{id}", s.handlePuzzleByID)
	s.r.Route("/play", func(r chi.Router) {
		r.Post("/new", s.handlePlayNew)
		r.Post("/guess", s.handlePlayGuess)
		r.Post("/check", s.handlePlayCheck)
	})
	s.r.Get("/daily/leaderboard", s.handleLeaderboard)
	s.r.Post("/share", s.handleShareCreate)
	s.r.Get("/share/{code}", s.handleShareResolve)
}

// ----------------------------- puzzle views --------------------------------

// riddleView is one clue as shown to players: row number and text, never
// the answer word.
type riddleView struct {
	Row  int    `json:"row"`
	Text string `json:"text"`
}

// puzzleView is the player-facing shape of a puzzle. First letters are
// the only revealed cells; rows equal columns, so they spell the first
// word and anchor the rest of the frame.
type puzzleView struct {
	ID           string         `json:"id"`
	Language     words.Language `json:"language"`
	Size         int            `json:"size"`
	Riddles      []riddleView   `json:"riddles"`
	FirstLetters []string       `json:"firstLetters"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// viewOf strips a puzzle down to what players may see before solving.
func viewOf(p *puzzle.Puzzle) puzzleView {
	v := puzzleView{
		ID:           p.ID,
		Language:     p.Language,
		Size:         p.Size,
		Riddles:      make([]riddleView, 0, len(p.Riddles)),
		FirstLetters: make([]string, 0, len(p.Words)),
		CreatedAt:    p.CreatedAt,
	}
	for i, rd := range p.Riddles {
		v.Riddles = append(v.Riddles, riddleView{Row: i, Text: rd.Text})
	}
	for _, w := range p.Words {
		v.FirstLetters = append(v.FirstLetters, string([]rune(w)[:1]))
	}
	return v
}

// dailyPuzzle resolves the published puzzle for the given date.
// Returns store.ErrNotFound when nothing is published yet.
func (s *Server) dailyPuzzle(ctx context.Context, t time.Time) (*puzzle.Puzzle, error) {
	n, err := s.puzzles.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}
	return s.puzzles.PublishedAt(ctx, daily.PuzzleIndex(t, s.salt, n))
}

// handlePuzzleToday returns the daily pick for the current UTC date.
func (s *Server) handlePuzzleToday(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	p, err := s.dailyPuzzle(r.Context(), now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"no_puzzles"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": daily.DateKey(now), "puzzle": viewOf(p)})
}

// handlePuzzleByID returns the player view of one stored puzzle.
func (s *Server) handlePuzzleByID(w http.ResponseWriter, r *http.Request) {
	p, err := s.puzzles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(p))
}

// ------------------------------- /play/new ---------------------------------

// playNewReq/Res payloads for POST /play/new. An empty puzzleId means
// "today's puzzle".
type playNewReq struct {
	PuzzleID string `json:"puzzleId"`
}
type playNewRes struct {
	SessionID string     `json:"sessionId"`
	Puzzle    puzzleView `json:"puzzle"`
}

// handlePlayNew starts a session for the requested (or daily) puzzle.
func (s *Server) handlePlayNew(w http.ResponseWriter, r *http.Request) {
	var req playNewReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var p *puzzle.Puzzle
	var err error
	if req.PuzzleID == "" {
		p, err = s.dailyPuzzle(r.Context(), time.Now().UTC())
	} else {
		p, err = s.puzzles.Get(r.Context(), req.PuzzleID)
	}
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	sess := &store.Session{
		ID:        genID(),
		PuzzleID:  p.ID,
		PlayerID:  s.ensureAnonID(w, r),
		StartedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(playNewRes{SessionID: sess.ID, Puzzle: viewOf(p)})
}

// ------------------------------ /play/guess --------------------------------

// playGuessReq/Res payloads for POST /play/guess.
type playGuessReq struct {
	SessionID string `json:"sessionId"`
	Row       int    `json:"row"`
	Word      string `json:"word"`
}
type playGuessRes struct {
	Marks   []feedback.LetterMark `json:"marks"`
	State   string                `json:"state"` // "playing" | "solved"
	Guesses int                   `json:"guesses"`
}

// handlePlayGuess scores one word guess against the answer of one row.
func (s *Server) handlePlayGuess(w http.ResponseWriter, r *http.Request) {
	var req playGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, p, ok := s.loadSession(w, r, req.SessionID)
	if !ok {
		return
	}
	if sess.Solved {
		_ = json.NewEncoder(w).Encode(playGuessRes{Marks: []feedback.LetterMark{}, State: "solved", Guesses: sess.Guesses})
		return
	}
	if req.Row < 0 || req.Row >= p.Size {
		http.Error(w, `{"error":"bad_row"}`, http.StatusBadRequest)
		return
	}

	guess := words.Normalize(p.Language, req.Word)
	if words.Length(guess) != p.Size {
		http.Error(w, `{"error":"length_mismatch"}`, http.StatusBadRequest)
		return
	}
	// Dictionary gate, only when a list of the right length is loaded.
	if set := s.sets[p.Language]; set != nil && set.Length() == p.Size && !set.Contains(guess) {
		http.Error(w, `{"error":"word_not_allowed"}`, http.StatusBadRequest)
		return
	}

	marks, err := feedback.ScoreWord(guess, p.Words[req.Row])
	if err != nil {
		http.Error(w, `{"error":"length_mismatch"}`, http.StatusBadRequest)
		return
	}

	sess.Guesses++
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("save session")
	}
	_ = json.NewEncoder(w).Encode(playGuessRes{Marks: marks, State: "playing", Guesses: sess.Guesses})
}

// ------------------------------ /play/check --------------------------------

// playCheckReq/Res payloads for POST /play/check. Grid cells are strings
// so clients can send "" for cells the player left empty.
type playCheckReq struct {
	SessionID string     `json:"sessionId"`
	Grid      [][]string `json:"grid"`
}
type playCheckRes struct {
	Cells  [][]feedback.CellMark `json:"cells"`
	State  string                `json:"state"` // "playing" | "solved"
	Checks int                   `json:"checks"`
}

// handlePlayCheck scores the whole player grid against the solution.
// The first fully-hit check marks the session solved and persists a
// result row for the leaderboard.
func (s *Server) handlePlayCheck(w http.ResponseWriter, r *http.Request) {
	var req playCheckReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, p, ok := s.loadSession(w, r, req.SessionID)
	if !ok {
		return
	}

	player, err := gridFromCells(p.Language, req.Grid)
	if err != nil {
		http.Error(w, `{"error":"bad_cell"}`, http.StatusBadRequest)
		return
	}
	cells, err := feedback.ScoreGrid(player, p.SolutionGrid())
	if err != nil {
		http.Error(w, `{"error":"shape_mismatch"}`, http.StatusBadRequest)
		return
	}

	sess.Checks++
	if feedback.AllCellsHit(cells) && !sess.Solved {
		sess.Solved = true
		res := store.Result{
			PuzzleID:  sess.PuzzleID,
			PlayerID:  sess.PlayerID,
			Solved:    true,
			Checks:    sess.Checks,
			ElapsedMs: int(time.Since(sess.StartedAt).Milliseconds()),
		}
		if err := s.puzzles.InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("puzzle", sess.PuzzleID).Msg("insert result")
		}
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("save session")
	}

	state := "playing"
	if sess.Solved {
		state = "solved"
	}
	_ = json.NewEncoder(w).Encode(playCheckRes{Cells: cells, State: state, Checks: sess.Checks})
}

// loadSession fetches the caller's session and its puzzle, writing the
// error response itself when either is missing or owned by someone else.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, id string) (*store.Session, *puzzle.Puzzle, bool) {
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil || sess.PlayerID != s.ensureAnonID(w, r) {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return nil, nil, false
	}
	p, err := s.puzzles.Get(r.Context(), sess.PuzzleID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, nil, false
	}
	return sess, p, true
}

// gridFromCells converts a client cell grid to runes. Empty strings map
// to empty cells; anything longer than one letter after normalization is
// rejected.
func gridFromCells(lang words.Language, cells [][]string) (square.Grid, error) {
	g := make(square.Grid, len(cells))
	for i, row := range cells {
		g[i] = make([]rune, len(row))
		for j, cell := range row {
			n := words.Normalize(lang, cell)
			if n == "" {
				continue
			}
			rs := []rune(n)
			if len(rs) != 1 {
				return nil, fmt.Errorf("cell (%d,%d): want a single letter, got %q", i, j, cell)
			}
			g[i][j] = rs[0]
		}
	}
	return g, nil
}

// --------------------------- /daily/leaderboard ----------------------------

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date     string                 `json:"date"`
	PuzzleID string                 `json:"puzzleId"`
	Top      []store.LeaderboardRow `json:"top"`
}

// handleLeaderboard returns the fastest solves for the given date's
// puzzle (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	t := time.Now().UTC()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
			return
		}
		t = parsed
	}

	p, err := s.dailyPuzzle(r.Context(), t)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = json.NewEncoder(w).Encode(lbRes{Date: daily.DateKey(t), Top: []store.LeaderboardRow{}})
			return
		}
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	rows, err := s.puzzles.Leaderboard(r.Context(), p.ID, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: daily.DateKey(t), PuzzleID: p.ID, Top: rows})
}

// --------------------------------- /share ----------------------------------

// shareReq/Res payloads for POST /share.
type shareReq struct {
	PuzzleID string `json:"puzzleId"`
}
type shareRes struct {
	Code string `json:"code"`
}

// handleShareCreate encodes a stored puzzle into a share code.
func (s *Server) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	var req shareReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	p, err := s.puzzles.Get(r.Context(), req.PuzzleID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	code, err := puzzle.EncodeShare(p)
	if err != nil {
		log.Error().Err(err).Str("puzzle", p.ID).Msg("encode share")
		http.Error(w, `{"error":"encode_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(shareRes{Code: code})
}

// handleShareResolve decodes a share code into the full puzzle document.
// Share codes carry the solution on purpose: the whole point is handing
// the puzzle to someone outside this server.
func (s *Server) handleShareResolve(w http.ResponseWriter, r *http.Request) {
	p, err := puzzle.DecodeShare(chi.URLParam(r, "code"))
	if err != nil {
		http.Error(w, `{"error":"invalid_code"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}
