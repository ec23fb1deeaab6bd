// internal/httpserver/auth.go
//
// Identity for the two kinds of caller:
//   - Players are anonymous. A long-lived cookie gives each browser a
//     stable ID so sessions and leaderboard rows can be attributed
//     without accounts.
//   - The editor is one password-protected principal. A bcrypt hash
//     comes from EDITOR_PASSWORD_HASH (or is derived at boot from
//     EDITOR_PASSWORD); login issues a short-lived HS256 JWT carrying
//     role=editor, delivered as a cookie and accepted as a bearer token.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// --------------------------- anonymous players -----------------------------

const anonCookieName = "msq_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to associate play sessions and results with a stable identifier.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("NODE_ENV") == "production",
		SameSite: func() http.SameSite {
			if os.Getenv("NODE_ENV") == "production" {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// ------------------------------ editor login -------------------------------

// resolveEditorHash picks the bcrypt hash the editor password is checked
// against. EDITOR_PASSWORD_HASH wins; EDITOR_PASSWORD is hashed at boot;
// with neither set the editor endpoints stay disabled.
func resolveEditorHash() []byte {
	if h := os.Getenv("EDITOR_PASSWORD_HASH"); h != "" {
		return []byte(h)
	}
	if pw := os.Getenv("EDITOR_PASSWORD"); pw != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("hash editor password")
			return nil
		}
		return h
	}
	return nil
}

type editorLoginReq struct {
	Password string `json:"password"`
}

// handleEditorLogin checks the password, signs a JWT, and sets the cookie.
func (s *Server) handleEditorLogin(w http.ResponseWriter, r *http.Request) {
	var body editorLoginReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(s.editorHash) == 0 {
		http.Error(w, `{"error":"editor_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	if bcrypt.CompareHashAndPassword(s.editorHash, []byte(body.Password)) != nil {
		http.Error(w, `{"error":"invalid_password"}`, http.StatusUnauthorized)
		return
	}
	tok, exp, err := signEditorJWT()
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	setEditorCookie(w, tok, exp)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "expiresAt": exp.UTC().Format(time.RFC3339)})
}

// handleEditorLogout clears the editor cookie.
func (s *Server) handleEditorLogout(w http.ResponseWriter, r *http.Request) {
	clearEditorCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ------------------------------ JWT & cookies ------------------------------

// signEditorJWT creates an HS256 JWT with role=editor and a configurable
// expiry (EDITOR_JWT_HOURS; default 12).
func signEditorJWT() (string, time.Time, error) {
	secret := getEnv("JWT_SECRET", "dev_secret_change_me")
	hours := 12
	if v := os.Getenv("EDITOR_JWT_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			hours = n
		}
	}
	exp := time.Now().Add(time.Duration(hours) * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "editor",
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	})
	ss, err := t.SignedString([]byte(secret))
	return ss, exp, err
}

// setEditorCookie writes the editor token cookie with appropriate security attributes.
func setEditorCookie(w http.ResponseWriter, token string, exp time.Time) {
	name := getEnv("EDITOR_COOKIE_NAME", "msq_editor")
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearEditorCookie deletes the editor token cookie.
func clearEditorCookie(w http.ResponseWriter) {
	name := getEnv("EDITOR_COOKIE_NAME", "msq_editor")
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the editor cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(getEnv("EDITOR_COOKIE_NAME", "msq_editor")); err == nil {
		return c.Value
	}
	return ""
}

// ---------------------------- auth middleware ------------------------------

// requireEditor enforces a valid JWT carrying role=editor.
func (s *Server) requireEditor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerOrCookie(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(getEnv("JWT_SECRET", "dev_secret_change_me")), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
				return
			}
			if role, _ := claims["role"].(string); role != "editor" {
				http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
