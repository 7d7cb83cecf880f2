package commands

import (
	"context"
	"errors"

	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"
	"dronefleet/internal/core/domain/services"
	"dronefleet/internal/core/ports"
	"dronefleet/internal/pkg/errs"
)

var (
	ErrNoOrderFound          = errors.New("no order found")
	ErrNoDroneAvailable      = errors.New("no drone can fly this order")
	ErrAssignmentIsOpen      = errors.New("order already has an open delivery")
	ErrDroneAssignmentIsOpen = errors.New("drone already has an open delivery")
)

// Assignment is the outcome of a successful drone reservation: the chosen
// drone, the opened flight record, and the flight plan used to pick it.
type Assignment struct {
	DroneID                kernel.UUID
	DeliveryLogID          kernel.UUID
	DistanceKm             float64
	EtaMinutes             int
	BatteryRequiredPercent float64
}

// AssignOrderCommandHandler orchestrates the drone assignment process.
// Reserves the requested drone under a row lock, or picks the best
// available drone of the order's restaurant when none was requested,
// then ships the order and opens the flight record within one
// transaction.
//
// Example:
//
//	handler := NewAssignOrderCommandHandler(uowFactory, planner)
//	cmd, _ := NewAssignOrderCommandForDrone(orderID, droneID)
//	assignment, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("Unknown order")
//	case errors.Is(err, errs.ErrRangeExceeded):
//	    log.Println("Destination out of range for this drone")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	default:
//	    log.Printf("Drone %s assigned, ETA %d min", assignment.DroneID, assignment.EtaMinutes)
//	}
type AssignOrderCommandHandler struct {
	uowFactory FleetUoWFactory
	planner    services.FlightPlanner
}

// NewAssignOrderCommandHandler creates a handler for drone assignment.
// Requires a FleetUoWFactory for cross-aggregate transactions and a
// FlightPlanner for feasibility checks.
func NewAssignOrderCommandHandler(uowFactory FleetUoWFactory, planner services.FlightPlanner) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
	}
}

// Handle processes the assignment command.
//
// When the command names a drone, exactly that drone is reserved: a
// missing drone, a drone that is not idle, or a flight plan the drone
// cannot fly all fail the call with the underlying error. When no drone
// was named, candidates come back ordered by battery; each is re-read
// under a row-level lock before reservation, so two concurrent
// assignments cannot both reserve the same drone, and candidates that
// fail the feasibility check or lose the race are skipped. Returns
// ErrAssignmentIsOpen when the order already has an open flight record,
// ErrDroneAssignmentIsOpen when the chosen drone does, and
// ErrNoDroneAvailable when no candidate can fly the order.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return Assignment{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	droneRepo := uow.DroneRepository()
	orderRepo := uow.OrderRepository()
	logRepo := uow.DeliveryLogRepository()

	orderEntity, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Assignment{}, ErrNoOrderFound
	}
	if err != nil {
		return Assignment{}, err
	}

	_, err = logRepo.GetOpenByOrder(ctx, cmd.OrderID())
	if err == nil {
		return Assignment{}, ErrAssignmentIsOpen
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return Assignment{}, err
	}

	var (
		assignment    Assignment
		assignedDrone *drone.Drone
	)

	if requested := cmd.DroneID(); requested != nil {
		assignment, assignedDrone, err = h.reserveRequestedDrone(ctx, droneRepo, logRepo, *requested, orderEntity)
	} else {
		var candidates []*drone.Drone
		candidates, err = droneRepo.GetAvailable(ctx, orderEntity.RestaurantID(), kernel.BatteryReserveFloor)
		if err != nil {
			return Assignment{}, err
		}

		assignment, assignedDrone, err = h.reserveFirstFeasible(ctx, droneRepo, logRepo, candidates, orderEntity)
	}
	if err != nil {
		return Assignment{}, err
	}

	if err = orderEntity.MarkShipped(assignedDrone.ID()); err != nil {
		return Assignment{}, err
	}

	logEntity, err := deliverylog.NewDeliveryLog(
		kernel.NewUUID(),
		orderEntity.ID(),
		assignedDrone.ID(),
		orderEntity.Destination(),
		orderEntity.DestinationAddress(),
		assignment.DistanceKm,
		assignment.EtaMinutes,
	)
	if err != nil {
		return Assignment{}, err
	}
	assignment.DeliveryLogID = logEntity.ID()

	if err = logRepo.Add(ctx, logEntity); err != nil {
		return Assignment{}, err
	}

	if err = orderRepo.Update(ctx, orderEntity); err != nil {
		return Assignment{}, err
	}

	if err = droneRepo.Update(ctx, assignedDrone); err != nil {
		return Assignment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Assignment{}, err
	}

	return assignment, nil
}

// reserveRequestedDrone locks the drone named by the caller and reserves
// exactly that one. Nothing is skipped here: a missing drone, a state or
// open-record conflict, and an infeasible plan all fail the call with the
// underlying error.
func (h *AssignOrderCommandHandler) reserveRequestedDrone(
	ctx context.Context,
	droneRepo ports.DroneRepository,
	logRepo ports.DeliveryLogRepository,
	droneID kernel.UUID,
	orderEntity *order.Order,
) (Assignment, *drone.Drone, error) {
	locked, err := droneRepo.GetForUpdate(ctx, droneID)
	if err != nil {
		return Assignment{}, nil, err
	}

	if err = locked.Reserve(orderEntity.ID()); err != nil {
		return Assignment{}, nil, err
	}

	open, err := droneHasOpenDelivery(ctx, logRepo, locked.ID())
	if err != nil {
		return Assignment{}, nil, err
	}
	if open {
		return Assignment{}, nil, ErrDroneAssignmentIsOpen
	}

	plan, err := h.planner.Plan(locked, orderEntity.Destination())
	if err != nil {
		return Assignment{}, nil, err
	}

	return Assignment{
		DroneID:                locked.ID(),
		DistanceKm:             plan.DistanceKm,
		EtaMinutes:             plan.EtaMinutes,
		BatteryRequiredPercent: plan.BatteryRequiredPercent,
	}, locked, nil
}

// reserveFirstFeasible walks the battery-ordered candidates, locks each one,
// and reserves the first that passes the flight plan. A candidate that was
// reserved or drained between the listing and the lock, or that still has
// an open flight record, is skipped, not an error.
func (h *AssignOrderCommandHandler) reserveFirstFeasible(
	ctx context.Context,
	droneRepo ports.DroneRepository,
	logRepo ports.DeliveryLogRepository,
	candidates []*drone.Drone,
	orderEntity *order.Order,
) (Assignment, *drone.Drone, error) {
	for _, candidate := range candidates {
		locked, err := droneRepo.GetForUpdate(ctx, candidate.ID())
		if err != nil {
			return Assignment{}, nil, err
		}

		if !locked.IsAvailable(kernel.BatteryReserveFloor) {
			continue
		}

		plan, err := h.planner.Plan(locked, orderEntity.Destination())
		if errors.Is(err, errs.ErrRangeExceeded) || errors.Is(err, errs.ErrInsufficientBattery) {
			continue
		}
		if err != nil {
			return Assignment{}, nil, err
		}

		open, err := droneHasOpenDelivery(ctx, logRepo, locked.ID())
		if err != nil {
			return Assignment{}, nil, err
		}
		if open {
			continue
		}

		if err = locked.Reserve(orderEntity.ID()); err != nil {
			return Assignment{}, nil, err
		}

		return Assignment{
			DroneID:                locked.ID(),
			DistanceKm:             plan.DistanceKm,
			EtaMinutes:             plan.EtaMinutes,
			BatteryRequiredPercent: plan.BatteryRequiredPercent,
		}, locked, nil
	}

	return Assignment{}, nil, ErrNoDroneAvailable
}

// droneHasOpenDelivery reports whether the drone still has a flight record
// in a non-terminal state.
func droneHasOpenDelivery(ctx context.Context, logRepo ports.DeliveryLogRepository, droneID kernel.UUID) (bool, error) {
	_, err := logRepo.GetOpenByDrone(ctx, droneID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}

	return false, err
}
