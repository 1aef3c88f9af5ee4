package shop_test

import (
	"context"
	"testing"
	"time"

	shop "github.com/garageworks/shop-manager"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAppointment(t *testing.T, repo shop.RepositoryManager, title string, at time.Time) *shop.Appointment {
	t.Helper()

	customer := createTestCustomer(t, repo, "Appt "+title)
	vehicle := createTestVehicle(t, repo, customer)

	record, err := repo.Appointments().Create(context.Background(), &shop.Appointment{
		CustomerID:      customer.ID,
		VehicleID:       vehicle.ID,
		Title:           title,
		AppointmentDate: at,
	})
	require.NoError(t, err)
	return record
}

func TestAppointmentsCreateDefaults(t *testing.T) {
	repo := setupTestRepo(t)

	record := createTestAppointment(t, repo, "Oil change", time.Now().Add(24*time.Hour))

	require.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, shop.AppointmentScheduled, record.Status)
	assert.Equal(t, 60, record.DurationMinutes)
}

func TestAppointmentsListOrdering(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	createTestAppointment(t, repo, "Later", now.Add(48*time.Hour))
	createTestAppointment(t, repo, "Sooner", now.Add(2*time.Hour))

	records, err := repo.Appointments().List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// soonest appointment first
	assert.Equal(t, "Sooner", records[0].Title)
	assert.Equal(t, "Later", records[1].Title)
}

func TestAppointmentsDeleteByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	record := createTestAppointment(t, repo, "Inspection", time.Now().Add(time.Hour))

	require.NoError(t, repo.Appointments().DeleteByID(ctx, record.ID))

	err := repo.Appointments().DeleteByID(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}
