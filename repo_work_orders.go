package shop

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WorkOrders stores shop work orders and their parts lines
type WorkOrders interface {
	crudRepository[*WorkOrder]

	List(ctx context.Context) ([]*WorkOrder, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	CreateWithItemsTx(ctx context.Context, tx bun.IDB, record *WorkOrder, items []*WorkOrderItem) (*WorkOrder, error)
	ListItems(ctx context.Context, workOrderID uuid.UUID) ([]*WorkOrderItem, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type workOrders struct {
	repository.Repository[*WorkOrder]
	db *bun.DB
}

var _ WorkOrders = (*workOrders)(nil)

func NewWorkOrdersRepository(db *bun.DB) WorkOrders {
	repo := repository.NewRepository[*WorkOrder](db, repository.ModelHandlers[*WorkOrder]{
		NewRecord: func() *WorkOrder { return &WorkOrder{} },
		GetID: func(w *WorkOrder) uuid.UUID {
			if w == nil {
				return uuid.Nil
			}
			return w.ID
		},
		SetID: func(w *WorkOrder, id uuid.UUID) {
			if w != nil {
				w.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
	})

	return &workOrders{
		Repository: repo,
		db:         db,
	}
}

func prepareWorkOrderDefaults(record *WorkOrder) {
	if record == nil {
		return
	}

	if record.Status == "" {
		record.Status = WorkOrderPending
	}

	if record.Priority == "" {
		record.Priority = PriorityMedium
	}

	if record.LaborRate == 0 {
		record.LaborRate = 75.00
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *workOrders) Create(ctx context.Context, record *WorkOrder, criteria ...repository.InsertCriteria) (*WorkOrder, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *workOrders) CreateTx(ctx context.Context, tx bun.IDB, record *WorkOrder, criteria ...repository.InsertCriteria) (*WorkOrder, error) {
	prepareWorkOrderDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *workOrders) List(ctx context.Context) ([]*WorkOrder, error) {
	var records []*WorkOrder
	err := a.db.NewSelect().
		Model(&records).
		Relation("Items").
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *workOrders) GetWithItems(ctx context.Context, id uuid.UUID) (*WorkOrder, error) {
	record := &WorkOrder{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Items").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

// CreateWithItemsTx inserts the order and its parts lines in the same
// transaction. The caller owns the transaction boundary.
func (a *workOrders) CreateWithItemsTx(ctx context.Context, tx bun.IDB, record *WorkOrder, items []*WorkOrderItem) (*WorkOrder, error) {
	record, err := a.CreateTx(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.WorkOrderID = record.ID
	}

	if len(items) > 0 {
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return nil, err
		}
		record.Items = items
	}

	return record, nil
}

func (a *workOrders) ListItems(ctx context.Context, workOrderID uuid.UUID) ([]*WorkOrderItem, error) {
	var records []*WorkOrderItem
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.work_order_id = ?", workOrderID).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *workOrders) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*WorkOrder)(nil)).
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
