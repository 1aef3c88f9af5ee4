package shop

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Inventory stores stocked parts
type Inventory interface {
	crudRepository[*InventoryItem]

	List(ctx context.Context) ([]*InventoryItem, error)
	LowStock(ctx context.Context) ([]*InventoryItem, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type inventory struct {
	repository.Repository[*InventoryItem]
	db *bun.DB
}

var _ Inventory = (*inventory)(nil)

func NewInventoryRepository(db *bun.DB) Inventory {
	repo := repository.NewRepository[*InventoryItem](db, repository.ModelHandlers[*InventoryItem]{
		NewRecord: func() *InventoryItem { return &InventoryItem{} },
		GetID: func(i *InventoryItem) uuid.UUID {
			if i == nil {
				return uuid.Nil
			}
			return i.ID
		},
		SetID: func(i *InventoryItem, id uuid.UUID) {
			if i != nil {
				i.ID = id
			}
		},
		GetIdentifier: func() string {
			return "sku"
		},
	})

	return &inventory{
		Repository: repo,
		db:         db,
	}
}

func prepareInventoryDefaults(record *InventoryItem) {
	if record == nil {
		return
	}

	if record.MinStockLevel == 0 {
		record.MinStockLevel = 10
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *inventory) Create(ctx context.Context, record *InventoryItem, criteria ...repository.InsertCriteria) (*InventoryItem, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *inventory) CreateTx(ctx context.Context, tx bun.IDB, record *InventoryItem, criteria ...repository.InsertCriteria) (*InventoryItem, error) {
	prepareInventoryDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *inventory) List(ctx context.Context) ([]*InventoryItem, error) {
	var records []*InventoryItem
	err := a.db.NewSelect().
		Model(&records).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

// LowStock returns items at or below their minimum stock level
func (a *inventory) LowStock(ctx context.Context) ([]*InventoryItem, error) {
	var records []*InventoryItem
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.stock_quantity <= ?TableAlias.min_stock_level").
		Order("stock_quantity ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *inventory) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*InventoryItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}
