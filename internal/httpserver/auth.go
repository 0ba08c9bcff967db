// internal/httpserver/auth.go
//
// Spectator authentication.
// Responsibilities:
//   - POST /auth/token: bcrypt password check, HS256 token.
//   - requireToken: bearer guard when a secret is configured.
//   - HashPassword / SignToken helpers for the CLI and tests.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const spectatorSubject = "spectator"

// HashPassword returns the bcrypt hash to put in stream.password_hash.
func HashPassword(pw string) (string, error) {
	if len(pw) < 8 || len(pw) > 72 {
		return "", errors.New("password must be 8-72 chars")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// SignToken creates an HS256 spectator token valid for ttl.
func SignToken(secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("no signing secret configured")
	}
	now := time.Now()
	exp := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   spectatorSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(secret))
	return ss, exp, err
}

// verifyToken checks signature, algorithm, expiry and subject.
func verifyToken(secret, token string) error {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if !t.Valid || claims.Subject != spectatorSubject {
		return errors.New("invalid token")
	}
	return nil
}

// bearer extracts a bearer token from the Authorization header, falling back
// to the access_token query parameter for EventSource clients.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get("access_token")
}

// requireToken enforces a valid spectator token when a secret is configured.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Secret == "" {
			next.ServeHTTP(w, r)
			return
		}
		tok := bearer(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := verifyToken(s.opts.Secret, tok); err != nil {
			log.Debug().Err(err).Msg("token rejected")
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type tokenReq struct {
	Password string `json:"password"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges the spectator password for a token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.opts.Secret == "" || s.opts.PasswordHash == "" {
		writeError(w, http.StatusNotFound, "auth_disabled")
		return
	}
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(s.opts.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid_password")
		return
	}
	tok, exp, err := SignToken(s.opts.Secret, s.opts.TokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(tokenRes{Token: tok, ExpiresAt: exp})
}
