package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
)

// MockWorkspaceRepository is a mock of repository.WorkspaceRepository
type MockWorkspaceRepository struct {
	mock.Mock
}

func NewMockWorkspaceRepository(t *testing.T) *MockWorkspaceRepository {
	m := &MockWorkspaceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *entity.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) FindByOwner(ctx context.Context, userID uuid.UUID) (*entity.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Workspace), args.Error(1)
}
