package shop

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// AppointmentsController serves the appointment endpoints
type AppointmentsController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewAppointmentsController(repo RepositoryManager, logger Logger) *AppointmentsController {
	_, logger = ResolveLogger("shop.appointments", nil, logger)
	return &AppointmentsController{
		Logger: logger,
		Repo:   repo,
	}
}

func RegisterAppointmentRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, repo RepositoryManager, logger Logger) *AppointmentsController {
	controller := NewAppointmentsController(repo, logger)

	app.Get("/appointments", controller.List, protected).SetName("appointments.list")
	app.Get("/appointments/:id", controller.Show, protected).SetName("appointments.show")
	app.Post("/appointments", controller.Create, protected).SetName("appointments.create")
	app.Put("/appointments/:id", controller.Update, protected).SetName("appointments.update")
	app.Delete("/appointments/:id", controller.Delete, protected).SetName("appointments.delete")

	return controller
}

// AppointmentPayload is the create/update body
type AppointmentPayload struct {
	CustomerID      uuid.UUID  `json:"customer_id"`
	VehicleID       uuid.UUID  `json:"vehicle_id"`
	AssignedTo      *uuid.UUID `json:"assigned_to"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	AppointmentDate time.Time  `json:"appointment_date"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
}

// Validate will run validation rules
func (r AppointmentPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.AppointmentDate, validation.Required),
		validation.Field(&r.Status, validation.In(
			AppointmentScheduled, AppointmentConfirmed, AppointmentInProgress,
			AppointmentCompleted, AppointmentCancelled,
		)),
	)
}

func (a *AppointmentsController) List(ctx router.Context) error {
	records, err := a.Repo.Appointments().List(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list appointments"))
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *AppointmentsController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Appointment not found"))
	}

	record, err := a.Repo.Appointments().GetByID(ctx.Context(), id.String())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Appointment not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch appointment"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *AppointmentsController) Create(ctx router.Context) error {
	payload := new(AppointmentPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("appointment create parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Customer, vehicle, title and date are required"))
	}

	if payload.CustomerID == uuid.Nil || payload.VehicleID == uuid.Nil || payload.Title == "" || payload.AppointmentDate.IsZero() {
		return RenderError(ctx, a.Logger, BadRequestError("Customer, vehicle, title and date are required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &Appointment{
		CustomerID:      payload.CustomerID,
		VehicleID:       payload.VehicleID,
		AssignedTo:      payload.AssignedTo,
		Title:           payload.Title,
		Description:     payload.Description,
		AppointmentDate: payload.AppointmentDate,
		DurationMinutes: payload.DurationMinutes,
		Status:          payload.Status,
	}

	if record.Status == "" {
		record.Status = AppointmentScheduled
	}

	if record.DurationMinutes == 0 {
		record.DurationMinutes = 60
	}

	record, err := a.Repo.Appointments().Create(ctx.Context(), record)
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create appointment"))
	}

	return ctx.JSON(router.StatusCreated, record)
}

func (a *AppointmentsController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Appointment not found"))
	}

	payload := new(AppointmentPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("appointment update parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Invalid appointment payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &Appointment{
		ID:              id,
		CustomerID:      payload.CustomerID,
		VehicleID:       payload.VehicleID,
		AssignedTo:      payload.AssignedTo,
		Title:           payload.Title,
		Description:     payload.Description,
		AppointmentDate: payload.AppointmentDate,
		DurationMinutes: payload.DurationMinutes,
		Status:          payload.Status,
	}

	record, err = a.Repo.Appointments().Update(ctx.Context(), record, repository.UpdateByID(id.String()), repository.UpdateSkipZeroValues())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Appointment not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update appointment"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *AppointmentsController) Delete(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Appointment not found"))
	}

	if err := a.Repo.Appointments().DeleteByID(ctx.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Appointment not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete appointment"))
	}

	return ctx.JSON(router.StatusOK, MessageResponse{Message: "Appointment deleted successfully"})
}
