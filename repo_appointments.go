package shop

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Appointments stores scheduled customer visits
type Appointments interface {
	crudRepository[*Appointment]

	List(ctx context.Context) ([]*Appointment, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type appointments struct {
	repository.Repository[*Appointment]
	db *bun.DB
}

var _ Appointments = (*appointments)(nil)

func NewAppointmentsRepository(db *bun.DB) Appointments {
	repo := repository.NewRepository[*Appointment](db, repository.ModelHandlers[*Appointment]{
		NewRecord: func() *Appointment { return &Appointment{} },
		GetID: func(a *Appointment) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Appointment, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
	})

	return &appointments{
		Repository: repo,
		db:         db,
	}
}

func prepareAppointmentDefaults(record *Appointment) {
	if record == nil {
		return
	}

	if record.Status == "" {
		record.Status = AppointmentScheduled
	}

	if record.DurationMinutes == 0 {
		record.DurationMinutes = 60
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *appointments) Create(ctx context.Context, record *Appointment, criteria ...repository.InsertCriteria) (*Appointment, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *appointments) CreateTx(ctx context.Context, tx bun.IDB, record *Appointment, criteria ...repository.InsertCriteria) (*Appointment, error) {
	prepareAppointmentDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *appointments) List(ctx context.Context) ([]*Appointment, error) {
	var records []*Appointment
	err := a.db.NewSelect().
		Model(&records).
		Order("appointment_date ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *appointments) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Appointment)(nil)).
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
