package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	inbus "dronefleet/internal/adapters/in/eventbus"
	httpapi "dronefleet/internal/adapters/in/http"
	"dronefleet/internal/adapters/out/eventbus"
	"dronefleet/internal/adapters/out/postgres"
	"dronefleet/internal/adapters/out/tracking"
	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/application/usecases/queries"
	"dronefleet/internal/core/domain/services"
	"dronefleet/internal/jobs"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	planner    services.FlightPlanner
	publisher  *eventbus.SaramaPublisher
	hub        *tracking.Hub
	scheduler  *tracking.InMemoryReturnScheduler
	config     Config
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	planner, err := services.NewFlightPlanner(config.MaxDistanceKm, config.ConsumptionPerKm)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid flight planner settings: %w", err)
	}

	publisher, err := eventbus.NewSaramaPublisher([]string{config.KafkaHost})
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to connect event publisher: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		planner:    planner,
		publisher:  publisher,
		hub:        tracking.NewHub(),
		scheduler:  tracking.NewInMemoryReturnScheduler(),
		config:     config,
	}, nil
}

// TrackingHub exposes the live-tracking hub for streaming consumers.
func (c *CompositionRoot) TrackingHub() *tracking.Hub {
	return c.hub
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.FleetUoWFactory = FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.planner)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.planner, c.publisher, c.hub)
}

func (c *CompositionRoot) CreateMarkArrivedCommandHandler() commands.MarkArrivedCommandHandler {
	var f commands.LogUoWFactory = FuncLogUoWFactory(func() commands.LogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkArrivedCommandHandler(f, c.publisher, c.hub)
}

func (c *CompositionRoot) CreateRecordTelemetryCommandHandler() commands.RecordTelemetryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordTelemetryCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateRegisterDroneCommandHandler() commands.RegisterDroneCommandHandler {
	var f commands.DroneUoWFactory = FuncDroneUoWFactory(func() commands.DroneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDroneCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkMaintenanceCommandHandler() commands.MarkMaintenanceCommandHandler {
	var f commands.DroneUoWFactory = FuncDroneUoWFactory(func() commands.DroneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkMaintenanceCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.MarkReadyCommandHandler {
	var f commands.DroneUoWFactory = FuncDroneUoWFactory(func() commands.DroneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReadyCommandHandler(f)
}

func (c *CompositionRoot) CreateReturnToBaseCommandHandler() commands.ReturnToBaseCommandHandler {
	var f commands.DroneUoWFactory = FuncDroneUoWFactory(func() commands.DroneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReturnToBaseCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.FleetUoWFactory = FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.publisher, c.planner)
}

func (c *CompositionRoot) CreateGetAvailableDronesQueryHandler() queries.GetAvailableDronesQueryHandler {
	return queries.NewGetAvailableDronesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryLogQueryHandler() queries.GetDeliveryLogQueryHandler {
	return queries.NewGetDeliveryLogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpapi.Server {
	return httpapi.NewServer(
		c.CreateAssignOrderCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateMarkArrivedCommandHandler(),
		c.CreateRecordTelemetryCommandHandler(),
		c.CreateRegisterDroneCommandHandler(),
		c.CreateMarkMaintenanceCommandHandler(),
		c.CreateMarkReadyCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetAvailableDronesQueryHandler(),
		c.CreateGetDeliveryLogQueryHandler(),
	)
}

func (c *CompositionRoot) CreateEventConsumer() (*inbus.Consumer, error) {
	return inbus.NewConsumer(
		[]string{c.config.KafkaHost},
		c.config.KafkaConsumerGroup,
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.scheduler,
		c.config.ReturnTransitDelay,
	)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReturnToBaseCommandHandler(), c.scheduler, logger)
}

// ReturnTransitDelay is how long a drone flies home after release.
func (c *CompositionRoot) ReturnTransitDelay() time.Duration {
	return c.config.ReturnTransitDelay
}

type FuncDroneUoWFactory func() commands.DroneUoW

func (f FuncDroneUoWFactory) Create() commands.DroneUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLogUoWFactory func() commands.LogUoW

func (f FuncLogUoWFactory) Create() commands.LogUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}
