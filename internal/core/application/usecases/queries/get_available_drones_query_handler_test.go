package queries_test

import (
	"context"
	"testing"
	"time"

	"dronefleet/internal/adapters/out/postgres/dronerepo"
	"dronefleet/internal/core/application/usecases/queries"
	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAvailableDronesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAvailableDronesQueryHandler
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&dronerepo.DroneDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAvailableDronesQueryHandler(db)
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE drones CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetAvailableDronesQuery(kernel.NewUUID(), 30)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) TestHandle_FiltersAndOrdersByBattery() {
	restaurantID := kernel.NewUUID()

	suite.saveDrone(suite.restoreDrone("DRN-FULL", restaurantID, drone.Idle, 95, true, nil))
	suite.saveDrone(suite.restoreDrone("DRN-HALF", restaurantID, drone.Idle, 55, true, nil))
	suite.saveDrone(suite.restoreDrone("DRN-LOW", restaurantID, drone.Idle, 10, true, nil))
	orderID := kernel.NewUUID()
	suite.saveDrone(suite.restoreDrone("DRN-BUSY", restaurantID, drone.Delivering, 90, true, &orderID))
	suite.saveDrone(suite.restoreDrone("DRN-OFF", restaurantID, drone.Idle, 90, false, nil))
	suite.saveDrone(suite.restoreDrone("DRN-OTHER", kernel.NewUUID(), drone.Idle, 90, true, nil))

	query, err := queries.NewGetAvailableDronesQuery(restaurantID, 30)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("DRN-FULL", result[0].Name)
	suite.InDelta(95.0, result[0].BatteryPercent, 0.0001)
	suite.InDelta(2.5, result[0].MaxPayloadKg, 0.0001)
	suite.InDelta(60.0, result[0].MaxSpeedKmh, 0.0001)
	suite.InDelta(10.762622, result[0].CurrentPosition.Latitude(), 0.000001)
	suite.InDelta(106.660172, result[0].CurrentPosition.Longitude(), 0.000001)

	suite.Equal("DRN-HALF", result[1].Name)
	suite.InDelta(55.0, result[1].BatteryPercent, 0.0001)
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAvailableDronesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetAvailableDronesQuery constructor")
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) restoreDrone(
	name string,
	restaurantID kernel.UUID,
	status drone.Status,
	batteryPercent float64,
	isActive bool,
	currentOrderID *kernel.UUID,
) *drone.Drone {
	home, err := kernel.NewGeoPoint(10.762622, 106.660172)
	suite.Require().NoError(err)

	testDrone, err := drone.RestoreDrone(
		kernel.NewUUID(),
		restaurantID,
		kernel.NewUUID(),
		name,
		status,
		home,
		home,
		batteryPercent,
		2.5,
		60,
		currentOrderID,
		isActive,
		0,
	)
	suite.Require().NoError(err)
	return testDrone
}

func (suite *GetAvailableDronesQueryHandlerTestSuite) saveDrone(testDrone *drone.Drone) {
	repo := dronerepo.NewGormDroneRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testDrone))
}

// noopTracker satisfies the repository's tracker dependency for test setup.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, interface{}) {}

func TestGetAvailableDronesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableDronesQueryHandlerTestSuite))
}
