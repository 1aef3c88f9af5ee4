package shop

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// UserProvider resolves identities from the credential and profile stores
type UserProvider struct {
	repo     RepositoryManager
	logger   Logger
	provider LoggerProvider
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(repo RepositoryManager) *UserProvider {
	loggerProvider, logger := ResolveLogger("shop.user_provider", nil, nil)
	return &UserProvider{
		repo:     repo,
		logger:   logger,
		provider: loggerProvider,
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.provider, u.logger = ResolveLogger("shop.user_provider", u.provider, l)
	return u
}

// WithLoggerProvider overrides the logger provider used by the user provider.
func (u *UserProvider) WithLoggerProvider(provider LoggerProvider) *UserProvider {
	u.provider, u.logger = ResolveLogger("shop.user_provider", provider, u.logger)
	return u
}

// VerifyIdentity will find the credential by email, compare the
// password, and resolve the profile. An unknown email and a wrong
// password both return ErrInvalidCredentials so a caller cannot probe
// which one failed.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	credential, err := u.repo.Credentials().GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve credential during verification")
	}

	if err := ComparePasswordAndHash(password, credential.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to compare password hash")
	}

	profile, err := u.repo.Users().GetByCredentialID(ctx, credential.ID)
	if err != nil {
		if errors.IsNotFound(err) {
			u.logger.Warn("credential has no profile row", "credential_id", credential.ID.String())
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve profile during verification")
	}

	return identityFromProfile(credential.ID, profile), nil
}

// FindIdentityByIdentifier resolves a credential id to its live profile.
// The profile is re-read on every call so role changes take effect on
// the next request without re-login.
func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	credentialID, err := uuid.Parse(identifier)
	if err != nil {
		return nil, ErrIdentityNotFound
	}

	profile, err := u.repo.Users().GetByCredentialID(ctx, credentialID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve profile")
	}

	return identityFromProfile(credentialID, profile), nil
}

func identityFromProfile(credentialID uuid.UUID, profile *User) Identity {
	return authIdentity{
		id:    credentialID.String(),
		email: profile.Email,
		name:  profile.FullName,
		role:  string(profile.Role),
	}
}

type authIdentity struct {
	id    string
	email string
	name  string
	role  string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Name() string {
	return a.name
}

func (a authIdentity) Role() string {
	return a.role
}

var _ Identity = authIdentity{}
