package shop_test

import (
	"context"
	"testing"

	shop "github.com/garageworks/shop-manager"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreate(t *testing.T) {
	repo := setupTestRepo(t)
	controller := shop.NewCustomersController(repo, nil)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*shop.CustomerPayload)
		payload.Name = "Jane Driver"
		payload.Email = "jane@example.com"
		payload.Phone = "(555) 123-4567"
	}).Return(nil)

	var body *shop.Customer
	ctx.On("JSON", router.StatusCreated, mock.Anything).Run(func(args mock.Arguments) {
		var ok bool
		body, ok = args.Get(1).(*shop.Customer)
		require.True(t, ok, "expected *shop.Customer body")
	}).Return(nil)

	require.NoError(t, controller.Create(ctx))
	ctx.AssertExpectations(t)

	assert.Equal(t, "Jane Driver", body.Name)
	assert.Equal(t, "jane@example.com", body.Email)
}

func TestCustomerCreateInvalidEmail(t *testing.T) {
	repo := setupTestRepo(t)
	controller := shop.NewCustomersController(repo, nil)

	ctx := router.NewMockContext()
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*shop.CustomerPayload)
		payload.Name = "Jane Driver"
		payload.Email = "not-an-email"
		payload.Phone = "(555) 123-4567"
	}).Return(nil)

	var body shop.ErrorResponse
	ctx.On("JSON", router.StatusBadRequest, mock.Anything).Run(func(args mock.Arguments) {
		body = args.Get(1).(shop.ErrorResponse)
	}).Return(nil)

	require.NoError(t, controller.Create(ctx))
	ctx.AssertExpectations(t)

	assert.Contains(t, body.Error, "must be a valid email address")
}

func TestCustomerUpdateInvalidEmail(t *testing.T) {
	repo := setupTestRepo(t)
	controller := shop.NewCustomersController(repo, nil)

	customer := createTestCustomer(t, repo, "Jane Driver")

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = customer.ID.String()
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*shop.CustomerPayload)
		payload.Name = "Jane Driver"
		payload.Email = "still-not-an-email"
		payload.Phone = "(555) 123-4567"
	}).Return(nil)

	var body shop.ErrorResponse
	ctx.On("JSON", router.StatusBadRequest, mock.Anything).Run(func(args mock.Arguments) {
		body = args.Get(1).(shop.ErrorResponse)
	}).Return(nil)

	require.NoError(t, controller.Update(ctx))
	ctx.AssertExpectations(t)

	assert.Contains(t, body.Error, "must be a valid email address")
}
