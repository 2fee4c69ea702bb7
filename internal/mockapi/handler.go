package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SaadSolutions/social/pkg/logger"
	"github.com/SaadSolutions/social/pkg/ratelimiter"
	"github.com/SaadSolutions/social/pkg/requestid"
	"github.com/SaadSolutions/social/pkg/validator"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type failure struct {
	Msg string `json:"msg"`
}

const maxRequestBody = 64 << 10

// Handler returns the router serving the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(s.logRequests)

	r.Method(http.MethodGet, "/health", s.health)

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/login", s.handleLogin)
		auth.Post("/signup", s.handleSignup)
	})
	r.Get("/me", s.handleMe)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, failure{Msg: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, failure{Msg: "Method not allowed"})
	})
	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	key := normalizeEmail(creds.Email)
	if s.throttled(w, r, key) {
		return
	}

	user, err := s.authenticate(r.Context(), creds.Email, creds.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		s.recordFailure(r, key)
		writeJSON(w, http.StatusUnauthorized, failure{Msg: "Invalid credentials"})
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}

	if s.attempts != nil {
		_ = s.attempts.Reset(r.Context(), key)
	}
	s.writeSession(w, r, http.StatusOK, user)
}

// throttled answers 429 when key has used up its failed attempts.
func (s *Server) throttled(w http.ResponseWriter, r *http.Request, key string) bool {
	if s.attempts == nil {
		return false
	}

	res, err := s.attempts.Peek(r.Context(), key)
	if err != nil {
		s.logger.WarnContext(r.Context(), "login limiter unavailable", logger.Error(err))
		return false
	}
	if !res.Exhausted() {
		return false
	}

	ratelimiter.SetHeaders(w.Header(), res, time.Now())
	writeJSON(w, http.StatusTooManyRequests, failure{Msg: "Too many login attempts, try again later"})
	return true
}

func (s *Server) recordFailure(r *http.Request, key string) {
	if s.attempts == nil {
		return
	}
	if _, err := s.attempts.Allow(r.Context(), key); err != nil {
		s.logger.WarnContext(r.Context(), "login limiter unavailable", logger.Error(err))
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := s.register(r.Context(), creds.Email, creds.Password)
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		first, _ := verrs.First()
		writeJSON(w, http.StatusBadRequest, failure{Msg: validationMessage(first)})
		return
	}
	switch {
	case errors.Is(err, ErrEmailTaken):
		writeJSON(w, http.StatusConflict, failure{Msg: "User already exists"})
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "user registered", logger.UserID(user.ID))
	s.writeSession(w, r, http.StatusCreated, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		writeJSON(w, http.StatusUnauthorized, failure{Msg: "Missing token"})
		return
	}

	id, err := s.tokens.verify(raw)
	if err != nil {
		s.logger.DebugContext(r.Context(), "token rejected", logger.Error(err))
		writeJSON(w, http.StatusUnauthorized, failure{Msg: "Invalid token"})
		return
	}

	user, ok := s.users.get(id)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, failure{Msg: "Invalid token"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, status int, user User) {
	token, err := s.tokens.issue(user)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, status, authResponse{Token: token, User: user})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, failure{Msg: "Internal server error"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Status(rec.status),
			logger.Duration(time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var creds credentials
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, failure{Msg: "Invalid request body"})
		return credentials{}, false
	}
	return creds, true
}

func validationMessage(e validator.ValidationError) string {
	switch {
	case e.Field == "email" && e.Code == "validation.required":
		return "Email is required"
	case e.Field == "email":
		return "Please provide a valid email"
	case e.Field == "password" && e.Code == "validation.required":
		return "Password is required"
	default:
		return "Password " + e.Message
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
