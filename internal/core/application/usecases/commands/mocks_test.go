package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/provider"
	"roadside/internal/core/domain/model/request"
	"roadside/internal/core/domain/model/requester"
	"roadside/internal/core/domain/services"
	"roadside/internal/core/ports"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetAllInSearchingStatus(ctx context.Context) ([]*request.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockProviderRepository struct{ mock.Mock }

func (m *MockProviderRepository) Add(ctx context.Context, p *provider.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepository) Update(ctx context.Context, p *provider.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepository) Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Provider), args.Error(1)
}

type MockRequesterRepository struct{ mock.Mock }

func (m *MockRequesterRepository) Add(ctx context.Context, r *requester.Requester) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequesterRepository) Update(ctx context.Context, r *requester.Requester) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequesterRepository) Get(ctx context.Context, id kernel.UUID) (*requester.Requester, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requester.Requester), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) ProviderRepository() ports.ProviderRepository {
	args := m.Called()
	return args.Get(0).(ports.ProviderRepository)
}

func (m *MockUoW) RequesterRepository() ports.RequesterRepository {
	args := m.Called()
	return args.Get(0).(ports.RequesterRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockProviderUoWFactory struct{ mock.Mock }

func (m *MockProviderUoWFactory) Create() commands.ProviderUoW {
	args := m.Called()
	return args.Get(0).(commands.ProviderUoW)
}

// Test fixtures shared across handler tests.

func testPolicy(t *testing.T) services.EscalationPolicy {
	t.Helper()
	policy, err := services.NewEscalationPolicy([]float64{3, 5, 8, 12}, 3, 30*time.Second)
	require.NoError(t, err)
	return policy
}

func testGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func testSearchingRequest(t *testing.T, requesterID kernel.UUID) *request.Request {
	t.Helper()
	r, err := request.NewRequest(
		kernel.NewUUID(), requesterID, kernel.VehicleCar, kernel.ServiceBattery,
		"battery died", testGeoPoint(t, 12.9716, 77.5946),
		3.0, time.Now().Add(30*time.Second), time.Now())
	require.NoError(t, err)
	return r
}

func testOnlineProvider(t *testing.T) *provider.Provider {
	t.Helper()
	skills, err := provider.NewSkills(
		[]kernel.VehicleCategory{kernel.VehicleCar},
		[]kernel.ServiceCategory{kernel.ServiceBattery},
	)
	require.NoError(t, err)

	p, err := provider.NewProvider(kernel.NewUUID(), "Ravi's Garage", skills)
	require.NoError(t, err)
	p.MarkVerified()
	require.NoError(t, p.GoOnline(testGeoPoint(t, 12.9720, 77.5950), time.Now()))
	return p
}

func testIdleRequester(t *testing.T, id kernel.UUID) *requester.Requester {
	t.Helper()
	r, err := requester.NewRequester(id, "Anita")
	require.NoError(t, err)
	return r
}
