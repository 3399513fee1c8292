package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

// MockFileRepository is a mock of repository.FileRepository
type MockFileRepository struct {
	mock.Mock
}

func NewMockFileRepository(t *testing.T) *MockFileRepository {
	m := &MockFileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFileRepository) Create(ctx context.Context, file *entity.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.File), args.Error(1)
}

func (m *MockFileRepository) Update(ctx context.Context, file *entity.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.File, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.File), args.Error(1)
}

func (m *MockFileRepository) FindByFolderID(ctx context.Context, workspaceID uuid.UUID, folderID *uuid.UUID) ([]*entity.File, error) {
	args := m.Called(ctx, workspaceID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.File), args.Error(1)
}

func (m *MockFileRepository) FindByFolderIDs(ctx context.Context, folderIDs []uuid.UUID) ([]*entity.File, error) {
	args := m.Called(ctx, folderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.File), args.Error(1)
}

func (m *MockFileRepository) IsNameAvailable(ctx context.Context, workspaceID uuid.UUID, name valueobject.FileName, folderID *uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, name, folderID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockFileRepository) DetachLink(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, linkID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrphanedRecordRepository is a mock of repository.OrphanedRecordRepository
type MockOrphanedRecordRepository struct {
	mock.Mock
}

func NewMockOrphanedRecordRepository(t *testing.T) *MockOrphanedRecordRepository {
	m := &MockOrphanedRecordRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrphanedRecordRepository) Create(ctx context.Context, record *entity.OrphanedRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrphanedRecordRepository) FindUnresolved(ctx context.Context, limit int) ([]*entity.OrphanedRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OrphanedRecord), args.Error(1)
}

func (m *MockOrphanedRecordRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrphanedRecordRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
