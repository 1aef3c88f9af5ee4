package shop

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Invoices stores billing records
type Invoices interface {
	crudRepository[*Invoice]

	List(ctx context.Context) ([]*Invoice, error)
	GetByWorkOrder(ctx context.Context, workOrderID uuid.UUID) (*Invoice, error)
}

type invoices struct {
	repository.Repository[*Invoice]
	db *bun.DB
}

var _ Invoices = (*invoices)(nil)

func NewInvoicesRepository(db *bun.DB) Invoices {
	repo := repository.NewRepository[*Invoice](db, repository.ModelHandlers[*Invoice]{
		NewRecord: func() *Invoice { return &Invoice{} },
		GetID: func(i *Invoice) uuid.UUID {
			if i == nil {
				return uuid.Nil
			}
			return i.ID
		},
		SetID: func(i *Invoice, id uuid.UUID) {
			if i != nil {
				i.ID = id
			}
		},
		GetIdentifier: func() string {
			return "invoice_number"
		},
	})

	return &invoices{
		Repository: repo,
		db:         db,
	}
}

func prepareInvoiceDefaults(record *Invoice) {
	if record == nil {
		return
	}

	if record.Status == "" {
		record.Status = InvoiceDraft
	}

	if record.TaxRate == 0 {
		record.TaxRate = 8.25
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *invoices) Create(ctx context.Context, record *Invoice, criteria ...repository.InsertCriteria) (*Invoice, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *invoices) CreateTx(ctx context.Context, tx bun.IDB, record *Invoice, criteria ...repository.InsertCriteria) (*Invoice, error) {
	prepareInvoiceDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *invoices) List(ctx context.Context) ([]*Invoice, error) {
	var records []*Invoice
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *invoices) GetByWorkOrder(ctx context.Context, workOrderID uuid.UUID) (*Invoice, error) {
	record := &Invoice{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.work_order_id = ?", workOrderID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"work_order_id": workOrderID.String(),
				})
		}
		return nil, err
	}

	return record, nil
}
