// Package apitest runs an in-process fake of the user REST API for tests.
//
// The fake keeps users in memory, issues HS256 JWT access tokens, enforces
// bearer authentication on /users/{id}/ and records every request so tests
// can assert on headers and payloads. Failures can be injected per method.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

var signingKey = []byte("apitest-signing-key")

// User is a stored account, password included.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	Gender    string `json:"gender,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Favorites string `json:"favorites,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	AboutMe   string `json:"about_me,omitempty"`
}

// Request is a recorded incoming request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration

	mu       sync.Mutex
	users    map[int64]*User
	nextID   int64
	requests []Request
	failures map[string][]failure
}

// NewServer starts the fake. Close it when done.
func NewServer() *Server {
	s := &Server{
		TokenTTL: time.Hour,
		users:    make(map[int64]*User),
		nextID:   1,
		failures: make(map[string][]failure),
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/users/", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	const userPath = "/users/{id:[0-9]+}/"
	r.Handle(userPath, s.authenticate(http.HandlerFunc(s.handleGet))).Methods(http.MethodGet)
	r.Handle(userPath, s.authenticate(http.HandlerFunc(s.handleUpdate))).Methods(http.MethodPut)
	r.Handle(userPath, s.authenticate(http.HandlerFunc(s.handleDelete))).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser stores u and returns its id.
func (s *Server) AddUser(u User) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = &u
	return u.ID
}

// User returns a copy of the stored user.
func (s *Server) User(id int64) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request with the given method.
func (s *Server) LastRequest(method string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method {
			return reqs[i], true
		}
	}
	return Request{}, false
}

// FailNext makes the next request with method answer status with body.
func (s *Server) FailNext(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], failure{status: status, body: body})
}

// IssueToken returns a token for id valid for ttl.
func IssueToken(id int64, ttl time.Duration) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(id, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	signed, err := token.SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body})
		var f *failure
		if q := s.failures[r.Method]; len(q) > 0 {
			f = &q[0]
			s.failures[r.Method] = q[1:]
		}
		s.mu.Unlock()

		if f != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (any, error) {
			return signingKey, nil
		})
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		if claims.Subject != mux.Vars(r)["id"] {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Not allowed"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		User
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]string{{"msg": "invalid body"}}})
		return
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Username == in.Username {
			s.mu.Unlock()
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username already registered"})
			return
		}
	}
	u := in.User
	u.Password = in.Password
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = &u
	out := u
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	var found *User
	for _, u := range s.users {
		if u.Username == in.Username && u.Password == in.Password {
			found = u
			break
		}
	}
	ttl := s.TokenTTL
	s.mu.Unlock()

	if found == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": IssueToken(found.ID, ttl),
		"token_type":   "bearer",
		"user_id":      found.ID,
		"username":     found.Username,
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*User, bool) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	u, ok := s.users[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": fmt.Sprintf("User %d not found", id)})
	}
	return u, ok
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.lookup(w, r)
	var out User
	if ok {
		out = *u
	}
	s.mu.Unlock()
	if ok {
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in map[string]string
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	u, ok := s.lookup(w, r)
	var out User
	if ok {
		for k, v := range in {
			switch k {
			case "gender":
				u.Gender = v
			case "birthdate":
				u.Birthdate = v
			case "favorites":
				u.Favorites = v
			case "nickname":
				u.Nickname = v
			case "about_me":
				u.AboutMe = v
			}
		}
		out = *u
	}
	s.mu.Unlock()
	if ok {
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.lookup(w, r)
	if ok {
		delete(s.users, u.ID)
	}
	s.mu.Unlock()
	if ok {
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
