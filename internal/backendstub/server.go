package backendstub

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	DefaultAccessTTL  = 5 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

type Option func(*Server)

func WithAccessTTL(d time.Duration) Option {
	return func(s *Server) { s.accessTTL = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithUser registers an account that can log in.
func WithUser(username, password string) Option {
	return func(s *Server) { s.users[username] = password }
}

// Server is the fake backend. Routes live under /api.
type Server struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	usersMu sync.RWMutex
	users   map[string]string
	revoked map[string]bool

	data *store

	engine *gin.Engine
	http   *httptest.Server

	refreshCalls atomic.Int32
	authRejected atomic.Int32
}

func New(opts ...Option) *Server {
	s := &Server{
		secret:     []byte("backendstub-signing-secret"),
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
		now:        time.Now,
		users:      map[string]string{},
		revoked:    map[string]bool{},
		data:       newStore(),
	}
	for _, o := range opts {
		o(s)
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.registerRoutes(s.engine.Group("/api"))
	return s
}

// Start serves the backend on a loopback port until Close.
func Start(opts ...Option) *Server {
	s := New(opts...)
	s.http = httptest.NewServer(s.engine)
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// URL is the backend root; the client appends /api.
func (s *Server) URL() string {
	if s.http == nil {
		return ""
	}
	return s.http.URL
}

func (s *Server) Close() {
	if s.http != nil {
		s.http.Close()
	}
}

// RefreshCalls counts hits on the refresh endpoint.
func (s *Server) RefreshCalls() int { return int(s.refreshCalls.Load()) }

// AuthRejections counts requests refused by the bearer check.
func (s *Server) AuthRejections() int { return int(s.authRejected.Load()) }

// IssueTokens mints a token pair for username without a login round trip.
// accessTTL may be short or negative to hand out nearly expired tokens.
func (s *Server) IssueTokens(username string, accessTTL time.Duration) (access, refresh string, err error) {
	now := s.now()
	access, err = GenerateToken(username, tokenTypeAccess, s.secret, now, accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = GenerateToken(username, tokenTypeRefresh, s.secret, now, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Revoke makes the refresh endpoint reject token.
func (s *Server) Revoke(refreshToken string) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.revoked[refreshToken] = true
}

func (s *Server) checkPassword(username, password string) bool {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	want, ok := s.users[username]
	return ok && want == password
}

func (s *Server) isRevoked(token string) bool {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return s.revoked[token]
}
