package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "roadside/internal/adapters/out/postgres"
	"roadside/internal/adapters/out/postgres/providerrepo"
	"roadside/internal/adapters/out/postgres/requesterrepo"
	"roadside/internal/adapters/out/postgres/requestrepo"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/provider"
	"roadside/internal/core/domain/model/request"
	"roadside/internal/core/domain/model/requester"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database,
// focused on the atomic three-record assignment writes.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&requestrepo.RequestDTO{},
		&providerrepo.ProviderDTO{},
		&requesterrepo.RequesterDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE requests, providers, requesters").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances with access to all three repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.RequestRepository())
	suite.NotNil(uow1.ProviderRepository())
	suite.NotNil(uow1.RequesterRepository())
	suite.NotNil(uow2.RequestRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

// TestUnitOfWork_TransactionErrors verifies operations without an active
// transaction fail.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_AcceptWritesThreeRecordsAtomically plays out the assignment
// scenario: the request, the provider and the requester change together in
// one transaction and all three changes are visible after commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AcceptWritesThreeRecordsAtomically() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	serviceRequest := createTestRequest(suite.T(), now)
	mechanic := createTestProvider(suite.T(), now)
	owner := createTestRequester(suite.T())

	suite.seedRecords(ctx, serviceRequest, mechanic, owner)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(serviceRequest.Accept(mechanic.ID(), "482913", now))
	suite.Require().NoError(mechanic.AssignRequest(serviceRequest.ID()))
	suite.Require().NoError(owner.BindRequest(serviceRequest.ID()))

	suite.Require().NoError(uow.RequestRepository().Update(ctx, serviceRequest))
	suite.Require().NoError(uow.ProviderRepository().Update(ctx, mechanic))
	suite.Require().NoError(uow.RequesterRepository().Update(ctx, owner))

	suite.Require().NoError(uow.Commit(ctx))

	readUow := suite.factory.Create()

	retrievedRequest, err := readUow.RequestRepository().Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(request.StatusAccepted, retrievedRequest.Status())
	suite.Require().NotNil(retrievedRequest.ProviderID())
	suite.Equal(mechanic.ID(), *retrievedRequest.ProviderID())
	suite.Equal(2, retrievedRequest.Version())

	retrievedProvider, err := readUow.ProviderRepository().Get(ctx, mechanic.ID())
	suite.Require().NoError(err)
	suite.False(retrievedProvider.IsAvailable())
	suite.Require().NotNil(retrievedProvider.ActiveRequestID())
	suite.Equal(serviceRequest.ID(), *retrievedProvider.ActiveRequestID())

	retrievedRequester, err := readUow.RequesterRepository().Get(ctx, owner.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedRequester.ActiveRequestID())
	suite.Equal(serviceRequest.ID(), *retrievedRequester.ActiveRequestID())
}

// TestUnitOfWork_RollbackDiscardsAllRecords verifies rollback leaves none of
// the three records changed.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllRecords() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	serviceRequest := createTestRequest(suite.T(), now)
	mechanic := createTestProvider(suite.T(), now)
	owner := createTestRequester(suite.T())

	suite.seedRecords(ctx, serviceRequest, mechanic, owner)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(serviceRequest.Accept(mechanic.ID(), "482913", now))
	suite.Require().NoError(mechanic.AssignRequest(serviceRequest.ID()))
	suite.Require().NoError(owner.BindRequest(serviceRequest.ID()))

	suite.Require().NoError(uow.RequestRepository().Update(ctx, serviceRequest))
	suite.Require().NoError(uow.ProviderRepository().Update(ctx, mechanic))
	suite.Require().NoError(uow.RequesterRepository().Update(ctx, owner))

	suite.Require().NoError(uow.Rollback(ctx))

	readUow := suite.factory.Create()

	retrievedRequest, err := readUow.RequestRepository().Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(request.StatusSearching, retrievedRequest.Status())
	suite.Nil(retrievedRequest.ProviderID())
	suite.Equal(1, retrievedRequest.Version())

	retrievedProvider, err := readUow.ProviderRepository().Get(ctx, mechanic.ID())
	suite.Require().NoError(err)
	suite.True(retrievedProvider.IsAvailable())
	suite.Nil(retrievedProvider.ActiveRequestID())

	retrievedRequester, err := readUow.RequesterRepository().Get(ctx, owner.ID())
	suite.Require().NoError(err)
	suite.Nil(retrievedRequester.ActiveRequestID())
}

// TestUnitOfWork_ConcurrentAccept_LoserGetsVersionError verifies two
// transactions racing for the same request: the first commit wins, the
// second fails its version check inside the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentAccept_LoserGetsVersionError() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	serviceRequest := createTestRequest(suite.T(), now)
	suite.seedRequest(ctx, serviceRequest)

	winner := suite.factory.Create()
	loser := suite.factory.Create()

	// Both read the request at version 1.
	suite.Require().NoError(winner.Begin(ctx))
	winnerCopy, err := winner.RequestRepository().Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loser.Begin(ctx))
	loserCopy, err := loser.RequestRepository().Get(ctx, serviceRequest.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(winnerCopy.Accept(kernel.NewUUID(), "111111", now))
	suite.Require().NoError(winner.RequestRepository().Update(ctx, winnerCopy))
	suite.Require().NoError(winner.Commit(ctx))

	// The loser still holds the stale version 1 aggregate.
	suite.Require().NoError(loserCopy.Accept(kernel.NewUUID(), "222222", now))
	err = loser.RequestRepository().Update(ctx, loserCopy)
	suite.Require().Error(err)

	var versionErr *errs.VersionIsInvalidError
	suite.Require().ErrorAs(err, &versionErr)
	suite.Require().NoError(loser.Rollback(ctx))
}

// seedRecords inserts the three aggregates, each through its own committed
// unit of work.
func (suite *UnitOfWorkIntegrationTestSuite) seedRecords(
	ctx context.Context,
	serviceRequest *request.Request,
	mechanic *provider.Provider,
	owner *requester.Requester,
) {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, serviceRequest))
	suite.Require().NoError(uow.ProviderRepository().Add(ctx, mechanic))
	suite.Require().NoError(uow.RequesterRepository().Add(ctx, owner))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedRequest(ctx context.Context, serviceRequest *request.Request) {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, serviceRequest))
	suite.Require().NoError(uow.Commit(ctx))
}

func createTestRequest(t *testing.T, now time.Time) *request.Request {
	t.Helper()

	location, err := kernel.NewGeoPoint(12.9716, 77.5946)
	if err != nil {
		t.Fatal(err)
	}

	serviceRequest, err := request.NewRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.VehicleCar,
		kernel.ServiceBattery,
		"engine will not crank",
		location,
		3,
		now.Add(30*time.Second),
		now,
	)
	if err != nil {
		t.Fatal(err)
	}
	return serviceRequest
}

func createTestProvider(t *testing.T, now time.Time) *provider.Provider {
	t.Helper()

	skills, err := provider.NewSkills(
		[]kernel.VehicleCategory{kernel.VehicleCar},
		[]kernel.ServiceCategory{kernel.ServiceBattery},
	)
	if err != nil {
		t.Fatal(err)
	}

	mechanic, err := provider.NewProvider(kernel.NewUUID(), "Ravi's Garage", skills)
	if err != nil {
		t.Fatal(err)
	}
	mechanic.MarkVerified()

	location, err := kernel.NewGeoPoint(12.9720, 77.5950)
	if err != nil {
		t.Fatal(err)
	}
	if err := mechanic.GoOnline(location, now); err != nil {
		t.Fatal(err)
	}
	return mechanic
}

func createTestRequester(t *testing.T) *requester.Requester {
	t.Helper()

	owner, err := requester.NewRequester(kernel.NewUUID(), "Anita")
	if err != nil {
		t.Fatal(err)
	}
	return owner
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
