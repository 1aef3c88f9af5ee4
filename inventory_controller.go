package shop

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
)

// InventoryController serves the inventory endpoints
type InventoryController struct {
	Logger Logger
	Repo   RepositoryManager
}

func NewInventoryController(repo RepositoryManager, logger Logger) *InventoryController {
	_, logger = ResolveLogger("shop.inventory", nil, logger)
	return &InventoryController{
		Logger: logger,
		Repo:   repo,
	}
}

func RegisterInventoryRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, repo RepositoryManager, logger Logger) *InventoryController {
	controller := NewInventoryController(repo, logger)

	// low-stock must register before :id so the router does not
	// swallow it as a parameter
	app.Get("/inventory/low-stock", controller.LowStock, protected).SetName("inventory.low-stock")
	app.Get("/inventory", controller.List, protected).SetName("inventory.list")
	app.Get("/inventory/:id", controller.Show, protected).SetName("inventory.show")
	app.Post("/inventory", controller.Create, protected).SetName("inventory.create")
	app.Put("/inventory/:id", controller.Update, protected).SetName("inventory.update")
	app.Delete("/inventory/:id", controller.Delete, protected).SetName("inventory.delete")

	return controller
}

// InventoryPayload is the create/update body
type InventoryPayload struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	StockQuantity int     `json:"stock_quantity"`
	MinStockLevel int     `json:"min_stock_level"`
	UnitPrice     float64 `json:"unit_price"`
}

// Validate will run validation rules
func (r InventoryPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.SKU, validation.Required),
		validation.Field(&r.StockQuantity, validation.Min(0)),
		validation.Field(&r.MinStockLevel, validation.Min(0)),
	)
}

func (a *InventoryController) List(ctx router.Context) error {
	records, err := a.Repo.Inventory().List(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list inventory"))
	}

	return ctx.JSON(router.StatusOK, records)
}

// LowStock lists items at or below their minimum stock level
func (a *InventoryController) LowStock(ctx router.Context) error {
	records, err := a.Repo.Inventory().LowStock(ctx.Context())
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list low stock items"))
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *InventoryController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Inventory item not found"))
	}

	record, err := a.Repo.Inventory().GetByID(ctx.Context(), id.String())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Inventory item not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch inventory item"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *InventoryController) Create(ctx router.Context) error {
	payload := new(InventoryPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("inventory create parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Name and SKU are required"))
	}

	if payload.Name == "" || payload.SKU == "" {
		return RenderError(ctx, a.Logger, BadRequestError("Name and SKU are required"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	if existing, err := a.Repo.Inventory().GetByIdentifier(ctx.Context(), payload.SKU); err == nil && existing != nil {
		return RenderError(ctx, a.Logger, goerrors.New("SKU already exists", goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict))
	}

	record := &InventoryItem{
		Name:          payload.Name,
		SKU:           payload.SKU,
		Description:   payload.Description,
		StockQuantity: payload.StockQuantity,
		MinStockLevel: payload.MinStockLevel,
		UnitPrice:     payload.UnitPrice,
	}

	record, err := a.Repo.Inventory().Create(ctx.Context(), record)
	if err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create inventory item"))
	}

	return ctx.JSON(router.StatusCreated, record)
}

func (a *InventoryController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Inventory item not found"))
	}

	payload := new(InventoryPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("inventory update parse payload", "error", err)
		return RenderError(ctx, a.Logger, BadRequestError("Invalid inventory payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()))
	}

	record := &InventoryItem{
		ID:            id,
		Name:          payload.Name,
		SKU:           payload.SKU,
		Description:   payload.Description,
		StockQuantity: payload.StockQuantity,
		MinStockLevel: payload.MinStockLevel,
		UnitPrice:     payload.UnitPrice,
	}

	record, err = a.Repo.Inventory().Update(ctx.Context(), record, repository.UpdateByID(id.String()))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Inventory item not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update inventory item"))
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *InventoryController) Delete(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return RenderError(ctx, a.Logger, NotFoundError("Inventory item not found"))
	}

	if err := a.Repo.Inventory().DeleteByID(ctx.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return RenderError(ctx, a.Logger, NotFoundError("Inventory item not found"))
		}
		return RenderError(ctx, a.Logger, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete inventory item"))
	}

	return ctx.JSON(router.StatusOK, MessageResponse{Message: "Inventory item deleted successfully"})
}
