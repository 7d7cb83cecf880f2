package commands_test

import (
	"testing"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustRestoreOwnedIdleDrone(t *testing.T, ownerID kernel.UUID) *drone.Drone {
	t.Helper()

	home := mustNewGeoPoint(t, 0, 0)
	d, err := drone.RestoreDrone(
		kernel.NewUUID(), kernel.NewUUID(), ownerID, "DRN-1",
		drone.Idle, home, home, 90, 2.5, 60, nil, true, 0)
	require.NoError(t, err)
	return d
}

func TestMarkMaintenanceCommandHandler_Handle_OwnerGroundsDrone(t *testing.T) {
	// Arrange
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	droneEntity := mustRestoreOwnedIdleDrone(t, ownerID)

	cmd, err := commands.NewMarkMaintenanceCommand(droneEntity.ID(), ownerID)
	require.NoError(t, err)

	droneRepo := new(MockDroneRepository)
	uow := new(MockDroneUoW)
	factory := new(MockDroneUoWFactory)

	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DroneRepository").Return(droneRepo).Once(),
		droneRepo.On("GetForUpdate", ctx, droneEntity.ID()).Return(droneEntity, nil).Once(),
		droneRepo.On("Update", ctx, droneEntity).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMarkMaintenanceCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, drone.Maintenance, droneEntity.Status())
	uow.AssertExpectations(t)
	droneRepo.AssertExpectations(t)
}

func TestMarkMaintenanceCommandHandler_Handle_StrangerIsRejected(t *testing.T) {
	// Arrange
	ctx := t.Context()
	droneEntity := mustRestoreOwnedIdleDrone(t, kernel.NewUUID())

	cmd, err := commands.NewMarkMaintenanceCommand(droneEntity.ID(), kernel.NewUUID())
	require.NoError(t, err)

	droneRepo := new(MockDroneRepository)
	uow := new(MockDroneUoW)
	factory := new(MockDroneUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DroneRepository").Return(droneRepo).Once()
	droneRepo.On("GetForUpdate", ctx, droneEntity.ID()).Return(droneEntity, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewMarkMaintenanceCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, drone.Idle, droneEntity.Status())
	droneRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkMaintenanceCommandHandler_Handle_UnknownDrone(t *testing.T) {
	// Arrange
	ctx := t.Context()
	droneID := kernel.NewUUID()

	cmd, err := commands.NewMarkMaintenanceCommand(droneID, kernel.NewUUID())
	require.NoError(t, err)

	droneRepo := new(MockDroneRepository)
	uow := new(MockDroneUoW)
	factory := new(MockDroneUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DroneRepository").Return(droneRepo).Once()
	droneRepo.On("GetForUpdate", ctx, droneID).
		Return(nil, errs.NewObjectNotFoundError("droneID", droneID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewMarkMaintenanceCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrNoDroneFound)
}

func TestMarkReadyCommandHandler_Handle_OwnerRestoresDrone(t *testing.T) {
	// Arrange
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	home := mustNewGeoPoint(t, 0, 0)
	droneEntity, err := drone.RestoreDrone(
		kernel.NewUUID(), kernel.NewUUID(), ownerID, "DRN-1",
		drone.Maintenance, home, home, 90, 2.5, 60, nil, true, 0)
	require.NoError(t, err)

	cmd, err := commands.NewMarkReadyCommand(droneEntity.ID(), ownerID)
	require.NoError(t, err)

	droneRepo := new(MockDroneRepository)
	uow := new(MockDroneUoW)
	factory := new(MockDroneUoWFactory)

	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DroneRepository").Return(droneRepo).Once(),
		droneRepo.On("GetForUpdate", ctx, droneEntity.ID()).Return(droneEntity, nil).Once(),
		droneRepo.On("Update", ctx, droneEntity).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMarkReadyCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, drone.Idle, droneEntity.Status())
	uow.AssertExpectations(t)
	droneRepo.AssertExpectations(t)
}

func TestMarkReadyCommandHandler_Handle_IdleDroneConflicts(t *testing.T) {
	// Ready only applies to a drone that is actually grounded.
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	droneEntity := mustRestoreOwnedIdleDrone(t, ownerID)

	cmd, err := commands.NewMarkReadyCommand(droneEntity.ID(), ownerID)
	require.NoError(t, err)

	droneRepo := new(MockDroneRepository)
	uow := new(MockDroneUoW)
	factory := new(MockDroneUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DroneRepository").Return(droneRepo).Once()
	droneRepo.On("GetForUpdate", ctx, droneEntity.ID()).Return(droneEntity, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewMarkReadyCommandHandler(factory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrStateConflict)
}
