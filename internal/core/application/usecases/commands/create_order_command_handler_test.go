package commands_test

import (
	"context"
	"errors"
	"testing"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"
	"dronefleet/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), mustNewGeoPoint(t, 10.8231, 106.6297),
		"12 Nguyen Hue", 125000, []order.Item{mustNewItem(t, 2)})
	require.NoError(t, err)

	var captured *order.Order
	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			captured = o
			return true
		})).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.True(t, captured.ID().IsEqual(cmd.OrderID()))
	assert.Equal(t, order.Pending, captured.Status())
	assert.Equal(t, order.PaymentUnpaid, captured.PaymentStatus())
	assert.Nil(t, captured.DroneID())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.CreateOrderCommand

	mockFactory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RepositoryAddError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), mustNewGeoPoint(t, 10.8231, 106.6297),
		"12 Nguyen Hue", 125000, []order.Item{mustNewItem(t, 2)})
	require.NoError(t, err)

	expectedError := errors.New("repository add failed")
	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(expectedError).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.Equal(t, expectedError, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}
