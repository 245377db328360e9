package requestrepo_test

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

	"roadside/internal/adapters/out/postgres/requestrepo"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
	"roadside/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// RequestRepositoryIntegrationTestSuite provides integration tests for
// RequestRepository using PostgreSQL containers to verify persistence
// behavior, including the optimistic version check on updates.
type RequestRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *requestrepo.GormRequestRepository
	tracker    *MockAggregateTracker
}

func (suite *RequestRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&requestrepo.RequestDTO{}))
}

func (suite *RequestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE requests").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = requestrepo.NewGormRequestRepository(suite.db, suite.tracker)
}

func (suite *RequestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RequestRepositoryIntegrationTestSuite) TestAdd_ValidRequest_Success() {
	ctx := context.Background()

	serviceRequest := suite.createSearchingRequest()
	suite.tracker.On("TrackAggregate", serviceRequest.ID(), serviceRequest).Once()

	err := suite.repository.Add(ctx, serviceRequest)
	suite.Require().NoError(err)

	suite.assertRequestCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestGet_ExistingRequest_RoundTripsAllFields() {
	ctx := context.Background()

	serviceRequest := suite.createSearchingRequest()
	providerID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)

	suite.Require().NoError(serviceRequest.Accept(providerID, "482913", now))
	suite.Require().NoError(serviceRequest.VerifyStart("482913", now.Add(time.Minute)))

	suite.tracker.On("TrackAggregate", serviceRequest.ID(), serviceRequest).Once()
	suite.Require().NoError(suite.repository.Add(ctx, serviceRequest))

	suite.tracker.On("TrackAggregate", serviceRequest.ID(), mock.Anything).Once()
	retrieved, err := suite.repository.Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)

	suite.Equal(serviceRequest.ID(), retrieved.ID())
	suite.Equal(serviceRequest.RequesterID(), retrieved.RequesterID())
	suite.Require().NotNil(retrieved.ProviderID())
	suite.Equal(providerID, *retrieved.ProviderID())
	suite.Equal(kernel.VehicleCar, retrieved.VehicleCategory())
	suite.Equal(kernel.ServiceBattery, retrieved.ServiceCategory())
	suite.Equal("flat battery near the flyover", retrieved.Description())
	suite.InDelta(12.9716, retrieved.RequesterLocation().Latitude(), 1e-9)
	suite.InDelta(77.5946, retrieved.RequesterLocation().Longitude(), 1e-9)
	suite.InDelta(3.0, retrieved.SearchRadiusKm(), 1e-9)
	suite.Equal(0, retrieved.RadiusExpansions())
	suite.Require().NotNil(retrieved.VerificationCode())
	suite.Equal("482913", *retrieved.VerificationCode())
	suite.True(retrieved.CodeVerified())
	suite.Equal(request.StatusInProgress, retrieved.Status())
	suite.Require().NotNil(retrieved.AcceptedAt())
	suite.WithinDuration(now, *retrieved.AcceptedAt(), time.Millisecond)
	suite.Require().NotNil(retrieved.StartedAt())
	suite.Equal(1, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestGet_NonExistentRequest_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()

	serviceRequest := suite.createSearchingRequest()
	suite.tracker.On("TrackAggregate", serviceRequest.ID(), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, serviceRequest))

	deadline := time.Now().UTC().Add(time.Minute)
	suite.Require().NoError(serviceRequest.ExpandRadius(5, deadline))
	suite.Require().NoError(suite.repository.Update(ctx, serviceRequest))

	retrieved, err := suite.repository.Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)

	suite.InDelta(5.0, retrieved.SearchRadiusKm(), 1e-9)
	suite.Equal(1, retrieved.RadiusExpansions())
	suite.Equal(2, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()

	serviceRequest := suite.createSearchingRequest()
	suite.tracker.On("TrackAggregate", serviceRequest.ID(), mock.Anything).Times(5)
	suite.Require().NoError(suite.repository.Add(ctx, serviceRequest))

	// Two copies loaded at version 1; both race to update.
	first, err := suite.repository.Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)

	deadline := time.Now().UTC().Add(time.Minute)
	suite.Require().NoError(first.ExpandRadius(5, deadline))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ExpandRadius(8, deadline))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var versionErr *errs.VersionIsInvalidError
	suite.Require().ErrorAs(err, &versionErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_NonExistentRequest_ReturnsVersionError() {
	ctx := context.Background()

	serviceRequest := suite.createSearchingRequest()
	suite.tracker.On("TrackAggregate", serviceRequest.ID(), serviceRequest).Once()

	err := suite.repository.Update(ctx, serviceRequest)
	suite.Require().Error(err)

	var versionErr *errs.VersionIsInvalidError
	suite.Require().ErrorAs(err, &versionErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestUpdate_ClearsFieldsToNull() {
	ctx := context.Background()

	serviceRequest := suite.createSearchingRequest()
	suite.tracker.On("TrackAggregate", serviceRequest.ID(), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, serviceRequest))

	// Cancelling from SEARCHING leaves provider fields empty and must persist
	// the zero-valued status timestamps as written, not skip them.
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(serviceRequest.Cancel(serviceRequest.RequesterID(), now))
	suite.Require().NoError(suite.repository.Update(ctx, serviceRequest))

	retrieved, err := suite.repository.Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)

	suite.Equal(request.StatusCancelled, retrieved.Status())
	suite.Nil(retrieved.ProviderID())
	suite.Require().NotNil(retrieved.CancelledAt())
	suite.Require().NotNil(retrieved.CancelledBy())
	suite.Equal(serviceRequest.RequesterID(), *retrieved.CancelledBy())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestGetAllInSearchingStatus_FiltersAndOrders() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(5)

	older := suite.createSearchingRequestAt(time.Now().UTC().Add(-time.Hour))
	newer := suite.createSearchingRequestAt(time.Now().UTC().Add(-time.Minute))

	accepted := suite.createSearchingRequest()
	suite.Require().NoError(accepted.Accept(kernel.NewUUID(), "111111", time.Now().UTC()))

	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, accepted))

	searching, err := suite.repository.GetAllInSearchingStatus(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(searching, 2)
	suite.Equal(older.ID(), searching[0].ID())
	suite.Equal(newer.ID(), searching[1].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RequestRepositoryIntegrationTestSuite) TestGetAllInSearchingStatus_NoSearchingRequests_ReturnsEmptySlice() {
	ctx := context.Background()

	searching, err := suite.repository.GetAllInSearchingStatus(ctx)
	suite.Require().NoError(err)
	suite.Empty(searching)

	suite.tracker.AssertExpectations(suite.T())
}

// createSearchingRequest creates a request in SEARCHING status with default values.
func (suite *RequestRepositoryIntegrationTestSuite) createSearchingRequest() *request.Request {
	return suite.createSearchingRequestAt(time.Now().UTC().Truncate(time.Microsecond))
}

func (suite *RequestRepositoryIntegrationTestSuite) createSearchingRequestAt(createdAt time.Time) *request.Request {
	location, err := kernel.NewGeoPoint(12.9716, 77.5946)
	suite.Require().NoError(err)

	serviceRequest, err := request.NewRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.VehicleCar,
		kernel.ServiceBattery,
		"flat battery near the flyover",
		location,
		3,
		createdAt.Add(30*time.Second),
		createdAt,
	)
	suite.Require().NoError(err)
	return serviceRequest
}

// assertRequestCount verifies the number of requests in the database.
func (suite *RequestRepositoryIntegrationTestSuite) assertRequestCount(expected int) {
	var count int64
	err := suite.db.Model(&requestrepo.RequestDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestRequestRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RequestRepositoryIntegrationTestSuite))
}
