package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/ports"
	"dronefleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLogUoW struct{ mock.Mock }

func (m *MockLogUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLogUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLogUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLogUoW) DeliveryLogRepository() ports.DeliveryLogRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryLogRepository)
}

type MockLogUoWFactory struct{ mock.Mock }

func (m *MockLogUoWFactory) Create() commands.LogUoW {
	args := m.Called()
	return args.Get(0).(commands.LogUoW)
}

func mustRestoreInFlightLog(t *testing.T, orderID, droneID kernel.UUID) *deliverylog.DeliveryLog {
	t.Helper()

	startedAt := time.Now().Add(-4 * time.Minute)
	l, err := deliverylog.RestoreDeliveryLog(
		kernel.NewUUID(), orderID, droneID, nil,
		mustNewGeoPoint(t, 0.05, 0.05), "12 Nguyen Hue", 4.9, 5,
		nil, nil, deliverylog.InFlight, &startedAt, nil, nil)
	require.NoError(t, err)
	return l
}

func TestMarkArrivedCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	orderID := kernel.NewUUID()
	droneID := kernel.NewUUID()
	arrivedAt := time.Now()
	openLog := mustRestoreInFlightLog(t, orderID, droneID)

	cmd, err := commands.NewMarkArrivedCommand(droneID, arrivedAt)
	require.NoError(t, err)

	logRepo := new(MockDeliveryLogRepository)
	uow := new(MockLogUoW)
	factory := new(MockLogUoWFactory)
	publisher := new(MockEventPublisher)
	tracker := new(StubTracker)

	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryLogRepository").Return(logRepo).Once(),
		logRepo.On("GetOpenByDrone", ctx, droneID).Return(openLog, nil).Once(),
		logRepo.On("Update", ctx, openLog).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("Publish", ctx, ports.DroneArrivedEvent{
		OrderID:   orderID,
		DroneID:   droneID,
		Timestamp: arrivedAt,
	}).Return(nil).Once()

	handler := commands.NewMarkArrivedCommandHandler(factory, publisher, tracker)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, deliverylog.Arrived, openLog.Status())
	require.NotNil(t, openLog.ArrivedAt())
	assert.True(t, openLog.ArrivedAt().Equal(arrivedAt))

	require.Len(t, tracker.statuses, 1)
	assert.Equal(t, "ARRIVED", tracker.statuses[0].Status)
	assert.True(t, tracker.statuses[0].OrderID.IsEqual(orderID))

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	logRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestMarkArrivedCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	// The arrival is already persisted; a broker outage is logged, not returned.
	ctx := t.Context()
	orderID := kernel.NewUUID()
	droneID := kernel.NewUUID()
	openLog := mustRestoreInFlightLog(t, orderID, droneID)

	cmd, err := commands.NewMarkArrivedCommand(droneID, time.Now())
	require.NoError(t, err)

	logRepo := new(MockDeliveryLogRepository)
	uow := new(MockLogUoW)
	factory := new(MockLogUoWFactory)
	publisher := new(MockEventPublisher)
	tracker := new(StubTracker)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryLogRepository").Return(logRepo).Once()
	logRepo.On("GetOpenByDrone", ctx, droneID).Return(openLog, nil).Once()
	logRepo.On("Update", ctx, openLog).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	handler := commands.NewMarkArrivedCommandHandler(factory, publisher, tracker)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Len(t, tracker.statuses, 1)
	publisher.AssertExpectations(t)
}

func TestMarkArrivedCommandHandler_Handle_NoOpenDelivery(t *testing.T) {
	// Arrange
	ctx := t.Context()
	droneID := kernel.NewUUID()

	cmd, err := commands.NewMarkArrivedCommand(droneID, time.Now())
	require.NoError(t, err)

	logRepo := new(MockDeliveryLogRepository)
	uow := new(MockLogUoW)
	factory := new(MockLogUoWFactory)
	publisher := new(MockEventPublisher)
	tracker := new(StubTracker)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryLogRepository").Return(logRepo).Once()
	logRepo.On("GetOpenByDrone", ctx, droneID).
		Return(nil, errs.NewObjectNotFoundError("droneID", droneID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewMarkArrivedCommandHandler(factory, publisher, tracker)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrNoOpenDeliveryFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	assert.Empty(t, tracker.statuses)
}
