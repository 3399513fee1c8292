package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

// MockFolderRepository is a mock of repository.FolderRepository
type MockFolderRepository struct {
	mock.Mock
}

func NewMockFolderRepository(t *testing.T) *MockFolderRepository {
	m := &MockFolderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFolderRepository) Create(ctx context.Context, folder *entity.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Folder), args.Error(1)
}

func (m *MockFolderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Folder, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Folder), args.Error(1)
}

func (m *MockFolderRepository) Update(ctx context.Context, folder *entity.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) FindByParentID(ctx context.Context, workspaceID uuid.UUID, parentID *uuid.UUID) ([]*entity.Folder, error) {
	args := m.Called(ctx, workspaceID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Folder), args.Error(1)
}

func (m *MockFolderRepository) GetAncestorChain(ctx context.Context, folderID uuid.UUID) ([]*entity.Folder, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Folder), args.Error(1)
}

func (m *MockFolderRepository) GetDepth(ctx context.Context, folderID uuid.UUID) (int, error) {
	args := m.Called(ctx, folderID)
	return args.Int(0), args.Error(1)
}

func (m *MockFolderRepository) GetSubtreeHeight(ctx context.Context, folderID uuid.UUID) (int, error) {
	args := m.Called(ctx, folderID)
	return args.Int(0), args.Error(1)
}

func (m *MockFolderRepository) FindSubtree(ctx context.Context, folderID uuid.UUID) ([]*entity.Folder, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Folder), args.Error(1)
}

func (m *MockFolderRepository) IsNameAvailable(ctx context.Context, workspaceID uuid.UUID, name valueobject.FolderName, parentID *uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, name, parentID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFolderRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockFolderRepository) DetachLink(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, linkID)
	return args.Get(0).(int64), args.Error(1)
}
