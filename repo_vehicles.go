package shop

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Vehicles stores vehicle records
type Vehicles interface {
	crudRepository[*Vehicle]

	List(ctx context.Context) ([]*Vehicle, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Vehicle, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type vehicles struct {
	repository.Repository[*Vehicle]
	db *bun.DB
}

var _ Vehicles = (*vehicles)(nil)

func NewVehiclesRepository(db *bun.DB) Vehicles {
	repo := repository.NewRepository[*Vehicle](db, repository.ModelHandlers[*Vehicle]{
		NewRecord: func() *Vehicle { return &Vehicle{} },
		GetID: func(v *Vehicle) uuid.UUID {
			if v == nil {
				return uuid.Nil
			}
			return v.ID
		},
		SetID: func(v *Vehicle, id uuid.UUID) {
			if v != nil {
				v.ID = id
			}
		},
		GetIdentifier: func() string {
			return "vin"
		},
	})

	return &vehicles{
		Repository: repo,
		db:         db,
	}
}

func prepareVehicleDefaults(record *Vehicle) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *vehicles) Create(ctx context.Context, record *Vehicle, criteria ...repository.InsertCriteria) (*Vehicle, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *vehicles) CreateTx(ctx context.Context, tx bun.IDB, record *Vehicle, criteria ...repository.InsertCriteria) (*Vehicle, error) {
	prepareVehicleDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *vehicles) List(ctx context.Context) ([]*Vehicle, error) {
	var records []*Vehicle
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *vehicles) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Vehicle, error) {
	var records []*Vehicle
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.customer_id = ?", customerID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *vehicles) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Vehicle)(nil)).
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
