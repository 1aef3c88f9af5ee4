package shop

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// VehiclesController serves the vehicle CRUD endpoints
type VehiclesController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewVehiclesController(repo RepositoryManager, logger Logger) *VehiclesController {
	_, logger = ResolveLogger("shop.vehicles", nil, logger)
	return &VehiclesController{
		Logger: logger,
		Repo:   repo,
	}
}

func RegisterVehicleRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, repo RepositoryManager, logger Logger) *VehiclesController {
	controller := NewVehiclesController(repo, logger)

	app.Get("/vehicles", controller.List, protected).SetName("vehicles.list")
	app.Get("/vehicles/:id", controller.Show, protected).SetName("vehicles.show")
	app.Post("/vehicles", controller.Create, protected).SetName("vehicles.create")
	app.Put("/vehicles/:id", controller.Update, protected).SetName("vehicles.update")
	app.Delete("/vehicles/:id", controller.Delete, protected).SetName("vehicles.delete")

	return controller
}

// VehiclePayload is the create/update body
type VehiclePayload struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	VIN          string    `json:"vin"`
	Color        string    `json:"color"`
	Notes        string    `json:"notes"`
}

// Validate will run validation rules
func (r VehiclePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Make, validation.Required),
		validation.Field(&r.Model, validation.Required),
		validation.Field(&r.Year, validation.Required, validation.Min(1900)),
	)
}

func (a *VehiclesController) List(ctx router.Context) error {
	if raw := ctx.Query("customer_id", ""); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return RenderError(ctx, a.Logger, BadRequestError("Invalid customer id"))
		}

		records, err := a.Repo.Vehicles().ListByCustomer(ctx.Context(), customerID)
		if err != nil {
			return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list vehicles"))
		}
		return ctx.JSON(router.StatusOK, records)
	}

	records, err := a.Repo.Vehicles().List(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list vehicles"))
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *VehiclesController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Vehicle not found"))
	}

	record, err := a.Repo.Vehicles().GetByID(ctx.Context(), id.String())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Vehicle not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch vehicle"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *VehiclesController) Create(ctx router.Context) error {
	payload := new(VehiclePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("vehicle create parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Customer, make, model and year are required"))
	}

	if payload.CustomerID == uuid.Nil || payload.Make == "" || payload.Model == "" || payload.Year == 0 {
		return RenderError(ctx, a.Logger, BadRequestError("Customer, make, model and year are required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	if _, err := a.Repo.Customers().GetByID(ctx.Context(), payload.CustomerID.String()); err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Customer not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch customer"))
	}

	record := &Vehicle{
		CustomerID:   payload.CustomerID,
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		LicensePlate: payload.LicensePlate,
		VIN:          payload.VIN,
		Color:        payload.Color,
		Notes:        payload.Notes,
	}

	record, err := a.Repo.Vehicles().Create(ctx.Context(), record)
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create vehicle"))
	}

	return ctx.JSON(router.StatusCreated, record)
}

func (a *VehiclesController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Vehicle not found"))
	}

	payload := new(VehiclePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("vehicle update parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Customer, make, model and year are required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &Vehicle{
		ID:           id,
		CustomerID:   payload.CustomerID,
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		LicensePlate: payload.LicensePlate,
		VIN:          payload.VIN,
		Color:        payload.Color,
		Notes:        payload.Notes,
	}

	record, err = a.Repo.Vehicles().Update(ctx.Context(), record, repository.UpdateByID(id.String()))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Vehicle not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update vehicle"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *VehiclesController) Delete(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Vehicle not found"))
	}

	if err := a.Repo.Vehicles().DeleteByID(ctx.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Vehicle not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete vehicle"))
	}

	return ctx.JSON(router.StatusOK, MessageResponse{Message: "Vehicle deleted successfully"})
}
