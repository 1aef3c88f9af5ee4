package shop

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
)

// CustomersController serves the customer CRUD endpoints
type CustomersController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewCustomersController(repo RepositoryManager, logger Logger) *CustomersController {
	_, logger = ResolveLogger("shop.customers", nil, logger)
	return &CustomersController{
		Logger: logger,
		Repo:   repo,
	}
}

func RegisterCustomerRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, repo RepositoryManager, logger Logger) *CustomersController {
	controller := NewCustomersController(repo, logger)

	app.Get("/customers", controller.List, protected).SetName("customers.list")
	app.Get("/customers/:id", controller.Show, protected).SetName("customers.show")
	app.Post("/customers", controller.Create, protected).SetName("customers.create")
	app.Put("/customers/:id", controller.Update, protected).SetName("customers.update")
	app.Delete("/customers/:id", controller.Delete, protected).SetName("customers.delete")

	return controller
}

// CustomerPayload is the create/update body
type CustomerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Validate will run validation rules
func (r CustomerPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Email, is.Email),
	)
}

// List returns all customers with their vehicles embedded
func (a *CustomersController) List(ctx router.Context) error {
	records, err := a.Repo.Customers().ListWithVehicles(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list customers"))
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *CustomersController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Customer not found"))
	}

	record, err := a.Repo.Customers().GetWithVehicles(ctx.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Customer not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch customer"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *CustomersController) Create(ctx router.Context) error {
	payload := new(CustomerPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("customer create parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Name and phone are required"))
	}

	if payload.Name == "" || payload.Phone == "" {
		return RenderError(ctx, a.Logger, BadRequestError("Name and phone are required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &Customer{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   NormalizePhone(payload.Phone),
		Address: payload.Address,
		Notes:   payload.Notes,
	}

	record, err := a.Repo.Customers().Create(ctx.Context(), record)
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create customer"))
	}

	return ctx.JSON(router.StatusCreated, record)
}

func (a *CustomersController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Customer not found"))
	}

	payload := new(CustomerPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("customer update parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Name and phone are required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &Customer{
		ID:      id,
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   NormalizePhone(payload.Phone),
		Address: payload.Address,
		Notes:   payload.Notes,
	}

	record, err = a.Repo.Customers().Update(ctx.Context(), record, repository.UpdateByID(id.String()))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Customer not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update customer"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *CustomersController) Delete(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Customer not found"))
	}

	if err := a.Repo.Customers().DeleteByID(ctx.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Customer not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete customer"))
	}

	return ctx.JSON(router.StatusOK, MessageResponse{Message: "Customer deleted successfully"})
}
