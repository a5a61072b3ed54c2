package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockConsumerRepository is a mock type for the ConsumerReader interface
type MockConsumerRepository struct {
	mock.Mock
}

func (m *MockConsumerRepository) FindActiveConsumerByNumber(ctx context.Context, consumerNumber string) (*domain.Consumer, error) {
	args := m.Called(ctx, consumerNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) FindActiveProfile(ctx context.Context, consumerID int64) (*domain.Profile, error) {
	args := m.Called(ctx, consumerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockConsumerRepository) CountConsumers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockChallanRepository is a mock type for the ChallanRepositoryFacade interface
type MockChallanRepository struct {
	mock.Mock
}

func (m *MockChallanRepository) FindLatestUnpaidChallan(ctx context.Context, consumerID int64) (*domain.Challan, error) {
	args := m.Called(ctx, consumerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challan), args.Error(1)
}

func (m *MockChallanRepository) FindPaidChallanInMonth(ctx context.Context, consumerID int64, month time.Time) (*domain.Challan, error) {
	args := m.Called(ctx, consumerID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challan), args.Error(1)
}

func (m *MockChallanRepository) ChallanNumberExists(ctx context.Context, challanNo string) (bool, error) {
	args := m.Called(ctx, challanNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockChallanRepository) SearchChallans(ctx context.Context, query string, limit int) ([]domain.ChallanListItem, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChallanListItem), args.Error(1)
}

func (m *MockChallanRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockChallanRepository) InsertChallans(ctx context.Context, challans []domain.Challan) error {
	args := m.Called(ctx, challans)
	return args.Error(0)
}

func (m *MockChallanRepository) MarkChallanPaid(ctx context.Context, challan domain.Challan) error {
	args := m.Called(ctx, challan)
	return args.Error(0)
}

// MockGenerationUnit is a mock type for the GenerationUnit interface
type MockGenerationUnit struct {
	mock.Mock
}

func (m *MockGenerationUnit) ListActiveConsumerSnapshots(ctx context.Context, afterID int64, limit int) ([]domain.ConsumerSnapshot, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsumerSnapshot), args.Error(1)
}

func (m *MockGenerationUnit) FindActiveFeeStructures(ctx context.Context, filter domain.FeeStructureFilter) ([]domain.FeeFundStructure, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeFundStructure), args.Error(1)
}

func (m *MockGenerationUnit) CategoryTitles(ctx context.Context, categoryIDs []int64) ([]string, error) {
	args := m.Called(ctx, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGenerationUnit) ChallanNumberExists(ctx context.Context, challanNo string) (bool, error) {
	args := m.Called(ctx, challanNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockGenerationUnit) InsertChallans(ctx context.Context, challans []domain.Challan) error {
	args := m.Called(ctx, challans)
	return args.Error(0)
}

func (m *MockGenerationUnit) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockGenerationUnit) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockGenerationBeginner hands out a prepared unit
type MockGenerationBeginner struct {
	mock.Mock
}

func (m *MockGenerationBeginner) BeginGeneration(ctx context.Context) (portsrepo.GenerationUnit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsrepo.GenerationUnit), args.Error(1)
}

// MockPublisher is a mock type for the EventPublisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}
