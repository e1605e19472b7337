package service

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
)

// SessionService owns the single active session. Login and logout are the
// only writers; outbound requests read the token through the TokenStore,
// which shares this service's atomicity guarantee.
type SessionService struct {
	client   ports.APIClient
	tokens   ports.TokenStore
	validate *requestValidator
	log      zerolog.Logger

	mu      sync.RWMutex
	current *domain.Session
}

func NewSessionService(client ports.APIClient, tokens ports.TokenStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		client:   client,
		tokens:   tokens,
		validate: newRequestValidator(),
		log:      log,
	}
}

// Login authenticates and stores the session for the lifetime of the
// process or until Logout.
func (s *SessionService) Login(ctx context.Context, in ports.AuthInput) (*domain.Session, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.client.Login(ctx, in)
	if err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("login failed")
		return nil, err
	}

	s.store(session)
	s.log.Info().Str("email", session.Email).Str("role", session.Role).Msg("session established")
	return s.Current(), nil
}

// Register validates the profile client-side, creates the account, and
// stores the resulting session. Validation failures never reach the API.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	session, err := s.client.Register(ctx, in)
	if err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("registration failed")
		return nil, err
	}

	s.store(session)
	s.log.Info().Str("email", session.Email).Msg("account registered")
	return s.Current(), nil
}

// Logout clears the session and the persisted token. Idempotent.
func (s *SessionService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted token")
	}
}

// IsAuthenticated reports whether a session is active. Pure query.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Token != ""
}

// Current returns a copy of the active session, or nil.
func (s *SessionService) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	clone := *s.current
	return &clone
}

// Token returns the active session token, or "" when unauthenticated.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Restore rebuilds the session from a previously persisted token. The token
// is parsed without signature verification (the client holds no signing
// key; the server re-verifies on every request), but expired tokens are
// dropped instead of restored.
func (s *SessionService) Restore() bool {
	token := s.tokens.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed persisted token")
		_ = s.tokens.Clear()
		return false
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(nowFunc()) {
		s.log.Info().Time("expired_at", exp.Time).Msg("discarding expired persisted token")
		_ = s.tokens.Clear()
		return false
	}

	session := &domain.Session{Token: token}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	} else if sub, ok := claims["sub"].(string); ok {
		session.Email = sub
	}
	if role, ok := claims["role"].(string); ok {
		session.Role = role
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	s.log.Info().Str("email", session.Email).Msg("session restored from persisted token")
	return true
}

func (s *SessionService) store(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.current = &clone
	if err := s.tokens.Set(session.Token); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session token")
	}
}
