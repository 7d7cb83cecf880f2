// Package http exposes the synchronous API of the fleet over echo.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/application/usecases/queries"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"
	"dronefleet/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignOrderHandler       commands.AssignOrderCommandHandler
	completeDeliveryHandler  commands.CompleteDeliveryCommandHandler
	markArrivedHandler       commands.MarkArrivedCommandHandler
	recordTelemetryHandler   commands.RecordTelemetryCommandHandler
	registerDroneHandler     commands.RegisterDroneCommandHandler
	markMaintenanceHandler   commands.MarkMaintenanceCommandHandler
	markReadyHandler         commands.MarkReadyCommandHandler
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getAvailableDronesHandler queries.GetAvailableDronesQueryHandler
	getDeliveryLogHandler     queries.GetDeliveryLogQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	assignOrderHandler commands.AssignOrderCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	markArrivedHandler commands.MarkArrivedCommandHandler,
	recordTelemetryHandler commands.RecordTelemetryCommandHandler,
	registerDroneHandler commands.RegisterDroneCommandHandler,
	markMaintenanceHandler commands.MarkMaintenanceCommandHandler,
	markReadyHandler commands.MarkReadyCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getAvailableDronesHandler queries.GetAvailableDronesQueryHandler,
	getDeliveryLogHandler queries.GetDeliveryLogQueryHandler,
) *Server {
	return &Server{
		assignOrderHandler:        assignOrderHandler,
		completeDeliveryHandler:   completeDeliveryHandler,
		markArrivedHandler:        markArrivedHandler,
		recordTelemetryHandler:    recordTelemetryHandler,
		registerDroneHandler:      registerDroneHandler,
		markMaintenanceHandler:    markMaintenanceHandler,
		markReadyHandler:          markReadyHandler,
		createOrderHandler:        createOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		getAvailableDronesHandler: getAvailableDronesHandler,
		getDeliveryLogHandler:     getDeliveryLogHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/drones/internal/assign-order", s.AssignOrder)
	v1.POST("/drones/:droneId/complete-delivery", s.CompleteDelivery)
	v1.POST("/drones/:droneId/arrived", s.MarkArrived)
	v1.POST("/drones/telemetry", s.RecordTelemetry)
	v1.POST("/drones", s.RegisterDrone)
	v1.PUT("/drones/:droneId/maintenance", s.MarkMaintenance)
	v1.PUT("/drones/:droneId/ready", s.MarkReady)
	v1.GET("/drones/available", s.GetAvailableDrones)

	v1.POST("/orders", s.CreateOrder)
	v1.PUT("/orders/:orderId/status", s.UpdateOrderStatus)

	v1.GET("/delivery-logs/order/:orderId", s.GetDeliveryLog)
}

// AssignOrder handles POST /api/v1/drones/internal/assign-order.
// Reserves the requested drone for the order, or picks the best available
// one when the request names none, and opens its flight record.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var request AssignOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var cmd commands.AssignOrderCommand
	if request.DroneID != "" {
		droneID, droneErr := kernel.UUIDFromString(request.DroneID)
		if droneErr != nil {
			return badRequest(ctx, "Invalid drone ID: "+droneErr.Error())
		}
		cmd, err = commands.NewAssignOrderCommandForDrone(orderID, droneID)
	} else {
		cmd, err = commands.NewAssignOrderCommand(orderID)
	}
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	assignment, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignmentResponse{
		DroneID:                assignment.DroneID.String(),
		DeliveryLogID:          assignment.DeliveryLogID.String(),
		DistanceKm:             assignment.DistanceKm,
		EtaMinutes:             assignment.EtaMinutes,
		BatteryRequiredPercent: assignment.BatteryRequiredPercent,
	})
}

// CompleteDelivery handles POST /api/v1/drones/:droneId/complete-delivery.
// The delivered order is identified by the orderId query parameter.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	droneID, err := kernel.UUIDFromString(ctx.Param("droneId"))
	if err != nil {
		return badRequest(ctx, "Invalid drone ID: "+err.Error())
	}
	orderID, err := kernel.UUIDFromString(ctx.QueryParam("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(droneID, orderID, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid completion data: "+err.Error())
	}

	if handleErr := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkArrived handles POST /api/v1/drones/:droneId/arrived.
func (s *Server) MarkArrived(ctx echo.Context) error {
	droneID, err := kernel.UUIDFromString(ctx.Param("droneId"))
	if err != nil {
		return badRequest(ctx, "Invalid drone ID: "+err.Error())
	}

	cmd, err := commands.NewMarkArrivedCommand(droneID, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid arrival data: "+err.Error())
	}

	if handleErr := s.markArrivedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordTelemetry handles POST /api/v1/drones/telemetry - one GPS report.
func (s *Server) RecordTelemetry(ctx echo.Context) error {
	var request TelemetryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	droneID, err := kernel.UUIDFromString(request.DroneID)
	if err != nil {
		return badRequest(ctx, "Invalid drone ID: "+err.Error())
	}
	position, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid position: "+err.Error())
	}

	cmd, err := commands.NewRecordTelemetryCommand(
		droneID,
		position,
		request.RecordedAt,
		request.BatteryPercent,
		request.SpeedKmh,
		request.AltitudeMeters,
	)
	if err != nil {
		return badRequest(ctx, "Invalid telemetry data: "+err.Error())
	}

	if handleErr := s.recordTelemetryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// RegisterDrone handles POST /api/v1/drones - registers a new drone.
func (s *Server) RegisterDrone(ctx echo.Context) error {
	var request RegisterDroneRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(request.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}
	ownerID, err := kernel.UUIDFromString(request.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner ID: "+err.Error())
	}
	home, err := kernel.NewGeoPoint(request.HomeLatitude, request.HomeLongitude)
	if err != nil {
		return badRequest(ctx, "Invalid home position: "+err.Error())
	}

	cmd, err := commands.NewRegisterDroneCommand(
		restaurantID,
		ownerID,
		request.Name,
		home,
		request.MaxPayloadKg,
		request.MaxSpeedKmh,
	)
	if err != nil {
		return badRequest(ctx, "Invalid drone data: "+err.Error())
	}

	if handleErr := s.registerDroneHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, RegisterDroneResponse{
		DroneID: cmd.DroneID().String(),
	})
}

// MarkMaintenance handles PUT /api/v1/drones/:droneId/maintenance.
// Only the drone's owner may ground it.
func (s *Server) MarkMaintenance(ctx echo.Context) error {
	droneID, err := kernel.UUIDFromString(ctx.Param("droneId"))
	if err != nil {
		return badRequest(ctx, "Invalid drone ID: "+err.Error())
	}

	var request DroneStateRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	requesterID, err := kernel.UUIDFromString(request.RequesterID)
	if err != nil {
		return badRequest(ctx, "Invalid requester ID: "+err.Error())
	}

	cmd, err := commands.NewMarkMaintenanceCommand(droneID, requesterID)
	if err != nil {
		return badRequest(ctx, "Invalid maintenance data: "+err.Error())
	}

	if handleErr := s.markMaintenanceHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkReady handles PUT /api/v1/drones/:droneId/ready.
func (s *Server) MarkReady(ctx echo.Context) error {
	droneID, err := kernel.UUIDFromString(ctx.Param("droneId"))
	if err != nil {
		return badRequest(ctx, "Invalid drone ID: "+err.Error())
	}

	var request DroneStateRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	requesterID, err := kernel.UUIDFromString(request.RequesterID)
	if err != nil {
		return badRequest(ctx, "Invalid requester ID: "+err.Error())
	}

	cmd, err := commands.NewMarkReadyCommand(droneID, requesterID)
	if err != nil {
		return badRequest(ctx, "Invalid readiness data: "+err.Error())
	}

	if handleErr := s.markReadyHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableDrones handles GET /api/v1/drones/available.
// Filters by restaurantId and an optional minBattery floor.
func (s *Server) GetAvailableDrones(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.QueryParam("restaurantId"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	minBattery := 0.0
	if raw := ctx.QueryParam("minBattery"); raw != "" {
		minBattery, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(ctx, "Invalid minBattery: "+err.Error())
		}
	}

	query, err := queries.NewGetAvailableDronesQuery(restaurantID, minBattery)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	drones, err := s.getAvailableDronesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]AvailableDrone, len(drones))
	for i, d := range drones {
		response[i] = AvailableDrone{
			ID:              d.ID.String(),
			Name:            d.Name,
			BatteryPercent:  d.BatteryPercent,
			Latitude:        d.CurrentPosition.Latitude(),
			Longitude:       d.CurrentPosition.Longitude(),
			MaxPayloadKg:    d.MaxPayloadKg,
			MaxSpeedKmh:     d.MaxSpeedKmh,
			TotalDeliveries: d.TotalDeliveries,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}
	restaurantID, err := kernel.UUIDFromString(request.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}
	destination, err := kernel.NewGeoPoint(request.DestinationLatitude, request.DestinationLongitude)
	if err != nil {
		return badRequest(ctx, "Invalid destination: "+err.Error())
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, line := range request.Items {
		productID, itemErr := kernel.UUIDFromString(line.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "Invalid product ID: "+itemErr.Error())
		}
		item, itemErr := order.NewItem(productID, line.Quantity)
		if itemErr != nil {
			return badRequest(ctx, "Invalid item: "+itemErr.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		customerID,
		restaurantID,
		destination,
		request.DestinationAddress,
		request.AmountCents,
		items,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID: cmd.OrderID().String(),
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:orderId/status.
// The requester's role decides which transitions are permitted.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}
	role, err := order.RoleFromString(request.Role)
	if err != nil {
		return badRequest(ctx, "Invalid role: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, role)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDeliveryLog handles GET /api/v1/delivery-logs/order/:orderId.
// Returns the most recent flight record for the order with its GPS trail.
func (s *Server) GetDeliveryLog(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetDeliveryLogQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	record, err := s.getDeliveryLogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	samples := make([]GpsSample, len(record.Samples))
	for i, sample := range record.Samples {
		samples[i] = GpsSample{
			Latitude:       sample.Position.Latitude(),
			Longitude:      sample.Position.Longitude(),
			RecordedAt:     sample.RecordedAt,
			BatteryPercent: sample.BatteryPercent,
			SpeedKmh:       sample.SpeedKmh,
			AltitudeMeters: sample.AltitudeMeters,
		}
	}

	return ctx.JSON(http.StatusOK, DeliveryLogResponse{
		ID:                     record.ID.String(),
		OrderID:                record.OrderID.String(),
		DroneID:                record.DroneID.String(),
		Status:                 record.Status,
		DestinationLatitude:    record.Destination.Latitude(),
		DestinationLongitude:   record.Destination.Longitude(),
		DestinationAddress:     record.DestinationAddress,
		EstimatedDistanceKm:    record.EstimatedDistanceKm,
		EstimatedEtaMinutes:    record.EstimatedEtaMinutes,
		ActualDistanceKm:       record.ActualDistanceKm,
		BatteryConsumedPercent: record.BatteryConsumedPercent,
		StartedAt:              record.StartedAt,
		ArrivedAt:              record.ArrivedAt,
		EndedAt:                record.EndedAt,
		Samples:                samples,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError translates use-case failures into API status codes:
// missing aggregates map to 404, lifecycle violations to 409, infeasible
// assignments to 422, and ownership violations to 403.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.Is(err, commands.ErrNoOrderFound),
		errors.Is(err, commands.ErrNoDroneFound),
		errors.Is(err, commands.ErrNoOpenDeliveryFound),
		errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict),
		errors.Is(err, commands.ErrAssignmentIsOpen),
		errors.Is(err, commands.ErrDroneAssignmentIsOpen),
		errors.Is(err, commands.ErrDeliveryOrderMismatch):
		status = http.StatusConflict
	case errors.Is(err, commands.ErrNoDroneAvailable),
		errors.Is(err, errs.ErrRangeExceeded),
		errors.Is(err, errs.ErrInsufficientBattery):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
