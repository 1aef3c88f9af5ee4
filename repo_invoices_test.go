package shop_test

import (
	"context"
	"testing"

	shop "github.com/garageworks/shop-manager"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T, repo shop.RepositoryManager, number string) *shop.Invoice {
	t.Helper()

	workOrder := createTestWorkOrder(t, repo, nil)

	record, err := repo.Invoices().Create(context.Background(), &shop.Invoice{
		WorkOrderID:   workOrder.ID,
		CustomerID:    workOrder.CustomerID,
		InvoiceNumber: number,
		Subtotal:      250,
		TaxAmount:     20.63,
		TotalAmount:   270.63,
	})
	require.NoError(t, err)
	return record
}

func TestInvoicesCreateDefaults(t *testing.T) {
	repo := setupTestRepo(t)

	record := createTestInvoice(t, repo, "INV-2025-0001")

	require.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, shop.InvoiceDraft, record.Status)
	assert.InDelta(t, 8.25, record.TaxRate, 0.001)
}

func TestInvoicesGetByWorkOrder(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	record := createTestInvoice(t, repo, "INV-2025-0002")

	fetched, err := repo.Invoices().GetByWorkOrder(ctx, record.WorkOrderID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)
	assert.InDelta(t, 270.63, fetched.TotalAmount, 0.001)

	_, err = repo.Invoices().GetByWorkOrder(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}

func TestInvoicesGetByIdentifier(t *testing.T) {
	repo := setupTestRepo(t)

	record := createTestInvoice(t, repo, "INV-2025-0003")

	fetched, err := repo.Invoices().GetByIdentifier(context.Background(), "INV-2025-0003")
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)
}
