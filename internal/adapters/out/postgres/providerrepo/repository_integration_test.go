package providerrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"roadside/internal/adapters/out/postgres/providerrepo"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/provider"
	"roadside/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ProviderRepositoryIntegrationTestSuite provides integration tests for
// ProviderRepository using PostgreSQL containers, with particular attention
// to the JSON round trip of the skill sets.
type ProviderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *providerrepo.GormProviderRepository
	tracker    *MockAggregateTracker
}

func (suite *ProviderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&providerrepo.ProviderDTO{}))
}

func (suite *ProviderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE providers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = providerrepo.NewGormProviderRepository(suite.db, suite.tracker)
}

func (suite *ProviderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestAdd_ValidProvider_Success() {
	ctx := context.Background()

	mechanic := suite.createOnlineProvider()
	suite.tracker.On("TrackAggregate", mechanic.ID(), mechanic).Once()

	err := suite.repository.Add(ctx, mechanic)
	suite.Require().NoError(err)

	suite.assertProviderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestGet_ExistingProvider_RoundTripsAllFields() {
	ctx := context.Background()

	mechanic := suite.createOnlineProvider()
	activeRequestID := kernel.NewUUID()
	suite.Require().NoError(mechanic.AssignRequest(activeRequestID))

	suite.tracker.On("TrackAggregate", mechanic.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, mechanic))

	retrieved, err := suite.repository.Get(ctx, mechanic.ID())
	suite.Require().NoError(err)

	suite.Equal(mechanic.ID(), retrieved.ID())
	suite.Equal("Ravi's Garage", retrieved.Name())
	suite.True(retrieved.IsVerified())
	suite.False(retrieved.IsAvailable())
	suite.Equal(
		[]kernel.VehicleCategory{kernel.VehicleBike, kernel.VehicleCar},
		retrieved.Skills().VehicleCategories())
	suite.Equal(
		[]kernel.ServiceCategory{kernel.ServicePuncture, kernel.ServiceBattery},
		retrieved.Skills().ServiceCategories())
	suite.Require().NotNil(retrieved.Location())
	suite.InDelta(12.9720, retrieved.Location().Latitude(), 1e-9)
	suite.InDelta(77.5950, retrieved.Location().Longitude(), 1e-9)
	suite.Require().NotNil(retrieved.ActiveRequestID())
	suite.Equal(activeRequestID, *retrieved.ActiveRequestID())
	suite.Equal(1, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestGet_NonExistentProvider_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()

	mechanic := suite.createOnlineProvider()
	suite.tracker.On("TrackAggregate", mechanic.ID(), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, mechanic))

	suite.Require().NoError(mechanic.GoOffline())
	suite.Require().NoError(suite.repository.Update(ctx, mechanic))

	retrieved, err := suite.repository.Get(ctx, mechanic.ID())
	suite.Require().NoError(err)

	suite.False(retrieved.IsAvailable())
	suite.Equal(2, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()

	mechanic := suite.createOnlineProvider()
	suite.tracker.On("TrackAggregate", mechanic.ID(), mock.Anything).Times(5)
	suite.Require().NoError(suite.repository.Add(ctx, mechanic))

	// Two copies loaded at version 1; both race to assign a request.
	first, err := suite.repository.Get(ctx, mechanic.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, mechanic.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.AssignRequest(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.AssignRequest(kernel.NewUUID()))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var versionErr *errs.VersionIsInvalidError
	suite.Require().ErrorAs(err, &versionErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProviderRepositoryIntegrationTestSuite) TestUpdate_ReleaseClearsActiveRequest() {
	ctx := context.Background()

	mechanic := suite.createOnlineProvider()
	suite.Require().NoError(mechanic.AssignRequest(kernel.NewUUID()))

	suite.tracker.On("TrackAggregate", mechanic.ID(), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, mechanic))

	mechanic.Release()
	suite.Require().NoError(suite.repository.Update(ctx, mechanic))

	retrieved, err := suite.repository.Get(ctx, mechanic.ID())
	suite.Require().NoError(err)

	suite.Nil(retrieved.ActiveRequestID())
	suite.True(retrieved.IsAvailable())
	suite.Equal(2, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

// createOnlineProvider creates a verified provider online at a fixed location.
func (suite *ProviderRepositoryIntegrationTestSuite) createOnlineProvider() *provider.Provider {
	skills, err := provider.NewSkills(
		[]kernel.VehicleCategory{kernel.VehicleBike, kernel.VehicleCar},
		[]kernel.ServiceCategory{kernel.ServicePuncture, kernel.ServiceBattery},
	)
	suite.Require().NoError(err)

	mechanic, err := provider.NewProvider(kernel.NewUUID(), "Ravi's Garage", skills)
	suite.Require().NoError(err)
	mechanic.MarkVerified()

	location, err := kernel.NewGeoPoint(12.9720, 77.5950)
	suite.Require().NoError(err)
	suite.Require().NoError(mechanic.GoOnline(location, time.Now().UTC().Truncate(time.Microsecond)))

	return mechanic
}

// assertProviderCount verifies the number of providers in the database.
func (suite *ProviderRepositoryIntegrationTestSuite) assertProviderCount(expected int) {
	var count int64
	err := suite.db.Model(&providerrepo.ProviderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestProviderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderRepositoryIntegrationTestSuite))
}
