package commands_test

import (
	"testing"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkDeliveredCommandHandler_Handle_ShippedOrderDelivered(t *testing.T) {
	// Arrange
	ctx := t.Context()
	droneID := kernel.NewUUID()
	orderEntity := mustRestoreOrderIn(t, order.Shipped, order.PaymentPaid, &droneID)

	cmd, err := commands.NewMarkDeliveredCommand(orderEntity.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderEntity.ID()).Return(orderEntity, nil).Once(),
		orderRepo.On("Update", ctx, orderEntity).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMarkDeliveredCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, orderEntity.Status())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestMarkDeliveredCommandHandler_Handle_RedeliveredSignalIsNoOp(t *testing.T) {
	// Arrange
	ctx := t.Context()
	droneID := kernel.NewUUID()
	orderEntity := mustRestoreOrderIn(t, order.Delivered, order.PaymentPaid, &droneID)

	cmd, err := commands.NewMarkDeliveredCommand(orderEntity.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, orderEntity.ID()).Return(orderEntity, nil).Once()
	orderRepo.On("Update", ctx, orderEntity).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewMarkDeliveredCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, orderEntity.Status())
	uow.AssertExpectations(t)
}

func TestMarkDeliveredCommandHandler_Handle_TerminalOrderIsNoOp(t *testing.T) {
	// A completion event may straggle in after the customer already
	// confirmed receipt; the completed order must not regress.
	ctx := t.Context()
	droneID := kernel.NewUUID()
	orderEntity := mustRestoreOrderIn(t, order.Completed, order.PaymentPaid, &droneID)

	cmd, err := commands.NewMarkDeliveredCommand(orderEntity.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, orderEntity.ID()).Return(orderEntity, nil).Once()
	orderRepo.On("Update", ctx, orderEntity).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewMarkDeliveredCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Completed, orderEntity.Status())
	uow.AssertExpectations(t)
}
