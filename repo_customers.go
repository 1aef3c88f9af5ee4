package shop

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Customers stores customer records
type Customers interface {
	repository.Repository[*Customer]

	ListWithVehicles(ctx context.Context) ([]*Customer, error)
	GetWithVehicles(ctx context.Context, id uuid.UUID) (*Customer, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type customers struct {
	repository.Repository[*Customer]
	db *bun.DB
}

var _ Customers = (*customers)(nil)

func NewCustomersRepository(db *bun.DB) Customers {
	repo := repository.NewRepository[*Customer](db, repository.ModelHandlers[*Customer]{
		NewRecord: func() *Customer { return &Customer{} },
		GetID: func(c *Customer) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Customer, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &customers{
		Repository: repo,
		db:         db,
	}
}

func prepareCustomerDefaults(record *Customer) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *customers) Create(ctx context.Context, record *Customer, criteria ...repository.InsertCriteria) (*Customer, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *customers) CreateTx(ctx context.Context, tx bun.IDB, record *Customer, criteria ...repository.InsertCriteria) (*Customer, error) {
	prepareCustomerDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *customers) ListWithVehicles(ctx context.Context) ([]*Customer, error) {
	var records []*Customer
	err := a.db.NewSelect().
		Model(&records).
		Relation("Vehicles").
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *customers) GetWithVehicles(ctx context.Context, id uuid.UUID) (*Customer, error) {
	record := &Customer{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Vehicles").
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

func (a *customers) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Customer)(nil)).
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
