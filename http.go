package shop

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// ErrorResponse is the JSON failure body, a single error string
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON success body for operations that return
// no record
type MessageResponse struct {
	Message string `json:"message"`
}

// RenderError maps an error to its HTTP status and renders the
// {"error": "..."} body. Internal failures are logged and rendered as
// an opaque message.
func RenderError(ctx router.Context, logger Logger, err error) error {
	status, message := httpStatusFor(err)

	if status >= router.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		message = "Internal server error"
	}

	return ctx.JSON(status, ErrorResponse{Error: message})
}

func httpStatusFor(err error) (int, string) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return router.StatusInternalServerError, err.Error()
	}

	if rich.Code != 0 {
		return int(rich.Code), rich.Message
	}

	switch rich.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return router.StatusBadRequest, rich.Message
	case goerrors.CategoryAuth:
		return router.StatusUnauthorized, rich.Message
	case goerrors.CategoryAuthz:
		return router.StatusForbidden, rich.Message
	case goerrors.CategoryNotFound:
		return router.StatusNotFound, rich.Message
	case goerrors.CategoryConflict:
		return router.StatusConflict, rich.Message
	default:
		return router.StatusInternalServerError, rich.Message
	}
}

// NotFoundError builds a 404 with a resource specific message, e.g.
// "Customer not found"
func NotFoundError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound)
}

// BadRequestError builds a 400 with a literal message
func BadRequestError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest)
}

func parseUUIDParam(ctx router.Context, name string) (uuid.UUID, error) {
	raw := ctx.Param(name, "")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, BadRequestError("Invalid id")
	}
	return id, nil
}
