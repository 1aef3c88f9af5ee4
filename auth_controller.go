package shop

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthController serves the sign-in, sign-up and session endpoints
type AuthController struct {
	Debug  bool
	Logger Logger
	Repo   RepositoryManager
	Auther Authenticator
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	_, logger := ResolveLogger("shop.auth_controller", nil, nil)
	c := &AuthController{
		Logger: logger,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func WithAuthRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		_, c.Logger = ResolveLogger("shop.auth_controller", nil, logger)
		return c
	}
}

// RegisterAuthRoutes mounts the public auth endpoints plus the
// bearer-protected session endpoint.
func RegisterAuthRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post("/auth/signin", controller.SignIn).SetName("auth.signin")
	app.Post("/auth/signup", controller.SignUp).SetName("auth.signup")
	app.Get("/auth/me", controller.Me, protected).SetName("auth.me")

	return controller
}

// SignInRequest payload
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// SessionUser is the user envelope returned by sign-in and /auth/me
type SessionUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Profile *User  `json:"profile"`
}

// SignInResponse is the sign-in success body
type SignInResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

func (a *AuthController) SignIn(ctx router.Context) error {
	payload := new(SignInRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("signin parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Email and password are required"))
	}

	if payload.Email == "" || payload.Password == "" {
		return RenderError(ctx, a.Logger, BadRequestError("Email and password are required"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("signin validate payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Email and password are required"))
	}

	if a.Debug {
		fmt.Println("======= AUTH SIGNIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("==========================")
	}

	token, identity, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	profile, err := a.lookupProfile(ctx, identity.ID())
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return ctx.JSON(router.StatusOK, SignInResponse{
		Token: token,
		User: SessionUser{
			ID:      identity.ID(),
			Email:   identity.Email(),
			Profile: profile,
		},
	})
}

// SignUpRequest payload
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Validate will run validation rules
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Role, validation.Required, validation.In(RoleAdmin, RoleMechanic)),
	)
}

func (a *AuthController) SignUp(ctx router.Context) error {
	payload := new(SignUpRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("signup parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("All fields are required"))
	}

	if payload.Email == "" || payload.Password == "" || payload.FullName == "" || payload.Role == "" {
		return RenderError(ctx, a.Logger, BadRequestError("All fields are required"))
	}

	if _, ok := ParseRole(payload.Role); !ok {
		return RenderError(ctx, a.Logger, BadRequestError("Invalid role"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("signup validate payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("All fields are required"))
	}

	registerUser := NewRegisterUserHandler(a.Repo)
	if err := registerUser.Execute(ctx.Context(), RegisterUserMessage{
		Email:    payload.Email,
		Password: payload.Password,
		FullName: payload.FullName,
		Role:     payload.Role,
	}); err != nil {
		a.Logger.Error("signup register user", "error", err)
		return RenderError(ctx, a.Logger, err)
	}

	return ctx.JSON(router.StatusCreated, MessageResponse{Message: "User created successfully"})
}

// Me returns the authenticated user with its live profile
func (a *AuthController) Me(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, "")
	if !ok {
		// the context enricher stores claims on the request context, so
		// fall back there before rejecting
		claims, ok = GetClaims(ctx.Context())
	}
	if !ok {
		return RenderError(ctx, a.Logger, ErrAccessTokenRequired)
	}

	identity, ok := IdentityFromContext(ctx.Context())
	if !ok {
		var err error
		identity, err = a.Auther.IdentityFromSession(ctx.Context(), &SessionObject{UserID: claims.UserID()})
		if err != nil {
			return RenderError(ctx, a.Logger, ErrIdentityNotFound)
		}
	}

	profile, err := a.lookupProfile(ctx, identity.ID())
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"user": SessionUser{
			ID:      identity.ID(),
			Email:   identity.Email(),
			Role:    identity.Role(),
			Profile: profile,
		},
	})
}

func (a *AuthController) lookupProfile(ctx router.Context, credentialID string) (*User, error) {
	session := &SessionObject{UserID: credentialID}

	credID, err := session.GetUserUUID()
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "invalid credential id")
	}

	profile, err := a.Repo.Users().GetByCredentialID(ctx.Context(), credID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			// sign-in succeeded but the profile row is gone, mirror the
			// original API which returns a null profile
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile")
	}

	return profile, nil
}
