package shop

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// InvoicesController serves the invoice endpoints
type InvoicesController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewInvoicesController(repo RepositoryManager, logger Logger) *InvoicesController {
	_, logger = ResolveLogger("shop.invoices", nil, logger)
	return &InvoicesController{
		Logger: logger,
		Repo:   repo,
	}
}

func RegisterInvoiceRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, repo RepositoryManager, logger Logger) *InvoicesController {
	controller := NewInvoicesController(repo, logger)

	app.Get("/invoices", controller.List, protected).SetName("invoices.list")
	app.Get("/invoices/:id", controller.Show, protected).SetName("invoices.show")
	app.Post("/invoices", controller.Create, protected).SetName("invoices.create")
	app.Put("/invoices/:id", controller.Update, protected).SetName("invoices.update")

	return controller
}

// InvoiceCreatePayload is the create body. Amounts are derived from
// the work order, not accepted from the client.
type InvoiceCreatePayload struct {
	WorkOrderID uuid.UUID  `json:"work_order_id"`
	TaxRate     float64    `json:"tax_rate"`
	DueDate     *time.Time `json:"due_date"`
	Notes       string     `json:"notes"`
}

// Validate will run validation rules
func (r InvoiceCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TaxRate, validation.Min(0.0)),
	)
}

// InvoiceUpdatePayload is the update body
type InvoiceUpdatePayload struct {
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date"`
	Notes   string     `json:"notes"`
}

// Validate will run validation rules
func (r InvoiceUpdatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(
			InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled,
		)),
	)
}

func (a *InvoicesController) List(ctx router.Context) error {
	records, err := a.Repo.Invoices().List(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list invoices"))
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *InvoicesController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Invoice not found"))
	}

	record, err := a.Repo.Invoices().GetByID(ctx.Context(), id.String())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Invoice not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch invoice"))
	}

	return ctx.JSON(router.StatusOK, record)
}

// Create bills a work order. The subtotal is parts plus labor, the
// invoice number is generated server side.
func (a *InvoicesController) Create(ctx router.Context) error {
	payload := new(InvoiceCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("invoice create parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Work order is required"))
	}

	if payload.WorkOrderID == uuid.Nil {
		return RenderError(ctx, a.Logger, BadRequestError("Work order is required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	workOrder, err := a.Repo.WorkOrders().GetWithItems(ctx.Context(), payload.WorkOrderID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Work order not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch work order"))
	}

	subtotal := workOrder.ActualHours * workOrder.LaborRate
	for _, item := range workOrder.Items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}

	taxRate := payload.TaxRate
	if taxRate == 0 {
		taxRate = 8.25
	}

	taxAmount := subtotal * taxRate / 100
	now := time.Now()

	record := &Invoice{
		ID:          uuid.New(),
		WorkOrderID: workOrder.ID,
		CustomerID:  workOrder.CustomerID,
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		TaxAmount:   taxAmount,
		TotalAmount: subtotal + taxAmount,
		Status:      InvoiceDraft,
		IssuedDate:  &now,
		DueDate:     payload.DueDate,
		Notes:       payload.Notes,
	}

	record.InvoiceNumber = NewInvoiceNumber(now, record.ID)

	record, err = a.Repo.Invoices().Create(ctx.Context(), record)
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create invoice"))
	}

	return ctx.JSON(router.StatusCreated, record)
}

func (a *InvoicesController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Invoice not found"))
	}

	payload := new(InvoiceUpdatePayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("invoice update parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Invalid invoice payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &Invoice{
		ID:      id,
		Status:  payload.Status,
		DueDate: payload.DueDate,
		Notes:   payload.Notes,
	}

	// moving into paid stamps the payment date
	if payload.Status == InvoicePaid {
		now := time.Now()
		record.PaidDate = &now
	}

	record, err = a.Repo.Invoices().Update(ctx.Context(), record, repository.UpdateByID(id.String()), repository.UpdateSkipZeroValues())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Invoice not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update invoice"))
	}

	return ctx.JSON(router.StatusOK, record)
}

// NewInvoiceNumber builds a display number like INV-2026-1a2b3c4d
func NewInvoiceNumber(at time.Time, id uuid.UUID) string {
	short := id.String()[:8]
	return fmt.Sprintf("INV-%d-%s", at.Year(), short)
}
