package shop

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WorkOrdersController serves the work order endpoints
type WorkOrdersController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewWorkOrdersController(repo RepositoryManager, logger Logger) *WorkOrdersController {
	_, logger = ResolveLogger("shop.work_orders", nil, logger)
	return &WorkOrdersController{
		Logger: logger,
		Repo:   repo,
	}
}

func RegisterWorkOrderRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, repo RepositoryManager, logger Logger) *WorkOrdersController {
	controller := NewWorkOrdersController(repo, logger)

	app.Get("/work-orders", controller.List, protected).SetName("work-orders.list")
	app.Get("/work-orders/:id", controller.Show, protected).SetName("work-orders.show")
	app.Post("/work-orders", controller.Create, protected).SetName("work-orders.create")
	app.Put("/work-orders/:id", controller.Update, protected).SetName("work-orders.update")
	app.Delete("/work-orders/:id", controller.Delete, protected).SetName("work-orders.delete")

	return controller
}

// WorkOrderItemPayload is one parts line on a work order
type WorkOrderItemPayload struct {
	InventoryID *uuid.UUID `json:"inventory_id"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
}

// WorkOrderPayload is the create/update body
type WorkOrderPayload struct {
	CustomerID          uuid.UUID              `json:"customer_id"`
	VehicleID           uuid.UUID              `json:"vehicle_id"`
	AssignedTo          *uuid.UUID             `json:"assigned_to"`
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	Status              string                 `json:"status"`
	Priority            string                 `json:"priority"`
	EstimatedHours      float64                `json:"estimated_hours"`
	ActualHours         float64                `json:"actual_hours"`
	LaborRate           float64                `json:"labor_rate"`
	EstimatedCompletion *time.Time             `json:"estimated_completion"`
	Items               []WorkOrderItemPayload `json:"items"`
}

// Validate will run validation rules
func (r WorkOrderPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Status, validation.In(
			WorkOrderPending, WorkOrderInProgress, WorkOrderCompleted, WorkOrderCancelled,
		)),
		validation.Field(&r.Priority, validation.In(
			PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
		)),
	)
}

func (a *WorkOrdersController) List(ctx router.Context) error {
	records, err := a.Repo.WorkOrders().List(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list work orders"))
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *WorkOrdersController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Work order not found"))
	}

	record, err := a.Repo.WorkOrders().GetWithItems(ctx.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Work order not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch work order"))
	}

	return ctx.JSON(router.StatusOK, record)
}

// Create inserts the work order and its parts lines in one transaction
func (a *WorkOrdersController) Create(ctx router.Context) error {
	payload := new(WorkOrderPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("work order create parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Customer, vehicle and title are required"))
	}

	if payload.CustomerID == uuid.Nil || payload.VehicleID == uuid.Nil || payload.Title == "" {
		return RenderError(ctx, a.Logger, BadRequestError("Customer, vehicle and title are required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &WorkOrder{
		CustomerID:          payload.CustomerID,
		VehicleID:           payload.VehicleID,
		AssignedTo:          payload.AssignedTo,
		Title:               payload.Title,
		Description:         payload.Description,
		Status:              payload.Status,
		Priority:            payload.Priority,
		EstimatedHours:      payload.EstimatedHours,
		LaborRate:           payload.LaborRate,
		EstimatedCompletion: payload.EstimatedCompletion,
	}

	if record.Status == "" {
		record.Status = WorkOrderPending
	}

	if record.Priority == "" {
		record.Priority = PriorityMedium
	}

	items := make([]*WorkOrderItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, &WorkOrderItem{
			InventoryID: item.InventoryID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	err := a.Repo.RunInTx(ctx.Context(), nil, func(c context.Context, tx bun.Tx) error {
		var err error
		record, err = a.Repo.WorkOrders().CreateWithItemsTx(c, tx, record, items)
		return err
	})

	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create work order"))
	}

	return ctx.JSON(router.StatusCreated, record)
}

func (a *WorkOrdersController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Work order not found"))
	}

	payload := new(WorkOrderPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("work order update parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Invalid work order payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &WorkOrder{
		ID:                  id,
		CustomerID:          payload.CustomerID,
		VehicleID:           payload.VehicleID,
		AssignedTo:          payload.AssignedTo,
		Title:               payload.Title,
		Description:         payload.Description,
		Status:              payload.Status,
		Priority:            payload.Priority,
		EstimatedHours:      payload.EstimatedHours,
		ActualHours:         payload.ActualHours,
		LaborRate:           payload.LaborRate,
		EstimatedCompletion: payload.EstimatedCompletion,
	}

	// transition to completed stamps the completion time
	if payload.Status == WorkOrderCompleted {
		now := time.Now()
		record.CompletedAt = &now
	}

	record, err = a.Repo.WorkOrders().Update(ctx.Context(), record, repository.UpdateByID(id.String()), repository.UpdateSkipZeroValues())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Work order not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update work order"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *WorkOrdersController) Delete(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Work order not found"))
	}

	if err := a.Repo.WorkOrders().DeleteByID(ctx.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Work order not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete work order"))
	}

	return ctx.JSON(router.StatusOK, MessageResponse{Message: "Work order deleted successfully"})
}
