package shop

import (
	"context"
	"reflect"
	"time"
)

type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
	logProvider  LoggerProvider
	activitySink ActivitySink
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	logProvider, logger := ResolveLogger("shop.auth", nil, nil)

	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		logProvider.GetLogger("shop.token_service"),
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       logger,
		logProvider:  logProvider,
		activitySink: noopActivitySink{},
	}
}

// WithActivitySink publishes login outcomes to the given sink
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logProvider, s.logger = ResolveLogger("shop.auth", s.logProvider, logger)
	return s
}

// WithLoggerProvider overrides the logger provider for the
// authenticator and its token service.
func (s *Auther) WithLoggerProvider(provider LoggerProvider) *Auther {
	s.logProvider, s.logger = ResolveLogger("shop.auth", provider, s.logger)

	if ts, ok := s.tokenService.(*TokenServiceImpl); ok {
		ts.logger = s.logProvider.GetLogger("shop.token_service")
	}

	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and mints a session token for the
// resolved identity.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, Identity, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		s.recordActivity(ctx, ActivityEvent{
			EventType:  ActivityEventLoginFailure,
			Identifier: identifier,
		})
		return "", nil, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", nil, ErrIdentityNotFound
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", nil, err
	}

	s.recordActivity(ctx, ActivityEvent{
		EventType:  ActivityEventLoginSuccess,
		Identifier: identifier,
		UserID:     identity.ID(),
	})

	return token, identity, nil
}

func (s *Auther) recordActivity(ctx context.Context, event ActivityEvent) {
	if s.activitySink == nil {
		return
	}
	event.OccurredAt = time.Now()
	if err := s.activitySink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record failed", "error", err)
	}
}

func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (Identity, error) {
	identity, err := s.provider.FindIdentityByIdentifier(ctx, session.GetUserID())
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier", "error", err)
		return nil, err
	}

	return identity, nil
}

func (s Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

var _ Authenticator = (*Auther)(nil)
