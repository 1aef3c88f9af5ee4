package shop

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// UsersController serves the staff roster, admin only
type UsersController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewUsersController(repo RepositoryManager, logger Logger) *UsersController {
	_, logger = ResolveLogger("shop.users", nil, logger)
	return &UsersController{
		Logger: logger,
		Repo:   repo,
	}
}

func RegisterUserRoutes[T any](app router.Router[T], adminOnly router.MiddlewareFunc, repo RepositoryManager, logger Logger) *UsersController {
	controller := NewUsersController(repo, logger)

	app.Get("/users", controller.List, adminOnly).SetName("users.list")

	return controller
}

func (a *UsersController) List(ctx router.Context) error {
	records, err := a.Repo.Users().List(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users"))
	}

	return ctx.JSON(router.StatusOK, records)
}
