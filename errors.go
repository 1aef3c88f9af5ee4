package shop

import (
	goerrors "github.com/goliatone/go-errors"
)

// Error messages here are part of the public API contract. The auth
// failures are intentionally undifferentiated: the caller can never
// tell whether the email or the password was wrong, nor which check
// rejected a token.
var (
	// ErrInvalidCredentials covers both unknown email and password mismatch
	ErrInvalidCredentials = goerrors.New("Invalid credentials", goerrors.CategoryAuth).
				WithCode(goerrors.CodeUnauthorized).
				WithTextCode("INVALID_CREDENTIALS")

	// ErrAccessTokenRequired is returned when no bearer token is present
	ErrAccessTokenRequired = goerrors.New("Access token required", goerrors.CategoryAuth).
				WithCode(goerrors.CodeUnauthorized).
				WithTextCode("TOKEN_REQUIRED")

	// ErrTokenMalformed covers garbage tokens and bad signatures
	ErrTokenMalformed = goerrors.New("Invalid token", goerrors.CategoryAuthz).
				WithCode(goerrors.CodeForbidden).
				WithTextCode("TOKEN_MALFORMED")

	// ErrTokenExpired is a well formed token past its exp claim. The API
	// renders it the same as a malformed one.
	ErrTokenExpired = goerrors.New("Invalid token", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden).
			WithTextCode("TOKEN_EXPIRED")

	// ErrUnableToDecodeSession is returned when claims cannot be decoded
	ErrUnableToDecodeSession = goerrors.New("unable to decode session claims", goerrors.CategoryAuthz).
					WithCode(goerrors.CodeForbidden).
					WithTextCode("SESSION_DECODE")

	// ErrIdentityNotFound is a valid token whose subject no longer resolves
	// to a profile row. The original server treats this as a 401.
	ErrIdentityNotFound = goerrors.New("Invalid token", goerrors.CategoryAuth).
				WithCode(goerrors.CodeUnauthorized).
				WithTextCode("IDENTITY_NOT_FOUND")

	// ErrAdminRequired rejects non-admin roles on privileged routes
	ErrAdminRequired = goerrors.New("Admin access required", goerrors.CategoryAuthz).
				WithCode(goerrors.CodeForbidden).
				WithTextCode("ADMIN_REQUIRED")

	// ErrUserExists rejects duplicate sign-up emails. The original server
	// responds 400, not 409, so we keep that code.
	ErrUserExists = goerrors.New("User already exists", goerrors.CategoryConflict).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("USER_EXISTS")

	// ErrMismatchedHashAndPassword is the internal bcrypt mismatch marker;
	// callers map it to ErrInvalidCredentials before it reaches a client
	ErrMismatchedHashAndPassword = goerrors.New("password does not match hash", goerrors.CategoryAuth).
					WithTextCode("PASSWORD_MISMATCH")

	// ErrNoEmptyString rejects empty passwords before hashing
	ErrNoEmptyString = goerrors.New("value must not be an empty string", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest)
)
