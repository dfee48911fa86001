// Package mocks provides testify mocks for the persistence and event bus interfaces.
package mocks

import (
	"context"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockPersistence is a mock implementation of persistence.Persistence interface.
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) RunRepository() persistence.RunRepository {
	args := m.Called()

	return args.Get(0).(persistence.RunRepository)
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockRunRepository is a mock implementation of persistence.RunRepository interface.
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Save(ctx context.Context, run *models.RunContext) error {
	args := m.Called(ctx, run)

	return args.Error(0)
}

func (m *MockRunRepository) GetByID(ctx context.Context, id string) (*models.RunContext, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.RunContext), args.Error(1)
}

func (m *MockRunRepository) GetByNodeType(ctx context.Context, nodeTypeID string) ([]*models.RunContext, error) {
	args := m.Called(ctx, nodeTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.RunContext), args.Error(1)
}

func (m *MockRunRepository) SaveResult(ctx context.Context, runID string, payload map[string]any) error {
	args := m.Called(ctx, runID, payload)

	return args.Error(0)
}

func (m *MockRunRepository) SaveError(ctx context.Context, runID string, message string) error {
	args := m.Called(ctx, runID, message)

	return args.Error(0)
}
