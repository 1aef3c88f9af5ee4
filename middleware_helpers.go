package shop

import (
	"context"
	"errors"

	"github.com/garageworks/shop-manager/middleware/jwtware"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ValidationListener aliases the jwtware listener so consumers can use shop helpers directly.
type ValidationListener = jwtware.ValidationListener

// ContextEnricherAdapter adapts jwtware.AuthClaims to shop.AuthClaims and stores
// claims in the standard context for downstream usage.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}

// tokenValidatorAdapter bridges the root TokenService to the jwtware
// validator interface, which returns its own claims mirror.
type tokenValidatorAdapter struct {
	service TokenService
}

func (a tokenValidatorAdapter) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := a.service.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute builds the bearer-token middleware. Outcomes:
// missing token renders 401 "Access token required", an invalid or
// expired token renders 403 "Invalid token", and a token whose subject
// no longer has a profile row renders 401.
func ProtectedRoute(auth Authenticator, cfg Config, logger Logger, opts ...func(*jwtware.Config)) router.MiddlewareFunc {
	config := jwtware.Config{
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		AuthScheme:      cfg.GetAuthScheme(),
		TokenValidator:  tokenValidatorAdapter{service: auth.TokenService()},
		ContextEnricher: ContextEnricherAdapter,
		ErrorHandler:    AuthErrorHandler(logger),
		ValidationListeners: []jwtware.ValidationListener{
			IdentityListener(auth),
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&config)
		}
	}

	return jwtware.New(config)
}

// RequireAdmin restricts the route to the admin role
func RequireAdmin() func(*jwtware.Config) {
	return func(cfg *jwtware.Config) {
		cfg.RequiredRole = RoleAdmin
	}
}

// MinimumRole restricts the route to roles at or above the given one
func MinimumRole(role UserRole) func(*jwtware.Config) {
	return func(cfg *jwtware.Config) {
		cfg.MinimumRole = role
	}
}

// IdentityListener re-reads the live profile for the token subject so
// role changes take effect without re-login. A subject without a
// profile row rejects the request.
func IdentityListener(auth Authenticator) jwtware.ValidationListener {
	return func(ctx router.Context, claims jwtware.AuthClaims) error {
		identity, err := auth.IdentityFromSession(ctx.Context(), &SessionObject{
			UserID: claims.UserID(),
		})
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrIdentityNotFound
			}
			return err
		}

		ctx.SetContext(WithIdentityContext(ctx.Context(), identity))

		return nil
	}
}

// AuthErrorHandler maps middleware failures to the JSON error contract
func AuthErrorHandler(logger Logger) router.ErrorHandler {
	return func(ctx router.Context, err error) error {
		switch {
		case errors.Is(err, jwtware.ErrJWTMissingOrMalformed):
			return RenderError(ctx, logger, ErrAccessTokenRequired)
		case errors.Is(err, jwtware.ErrInsufficientRole):
			return RenderError(ctx, logger, ErrAdminRequired)
		default:
			var rich *goerrors.Error
			if goerrors.As(err, &rich) {
				return RenderError(ctx, logger, rich)
			}
			return RenderError(ctx, logger, ErrTokenMalformed)
		}
	}
}
