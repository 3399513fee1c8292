package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
)

const fileColumns = "id, workspace_id, folder_id, name, mime_type, size, storage_key, " + attributionColumns + ", created_at"

// FileRepository はファイルリポジトリの実装です
type FileRepository struct {
	*database.BaseRepository
}

// NewFileRepository は新しいFileRepositoryを作成します
func NewFileRepository(txManager *database.TxManager) *FileRepository {
	return &FileRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はファイルを作成します
func (r *FileRepository) Create(ctx context.Context, file *entity.File) error {
	args := []any{
		file.ID,
		file.WorkspaceID,
		uuidToPgtype(file.FolderID),
		file.Name.Value(),
		file.MimeType.Value(),
		file.Size,
		file.StorageKey.Value(),
	}
	args = append(args, attributionArgs(file.Attribution)...)
	args = append(args, file.CreatedAt)

	_, err := r.Querier(ctx).Exec(ctx,
		`INSERT INTO files (`+fileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		args...,
	)
	return r.HandleError(err)
}

// FindByID はIDでファイルを検索します
func (r *FileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	row := r.Querier(ctx).QueryRow(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id)
	file, err := scanFile(row)
	if err != nil {
		return nil, r.HandleError(err)
	}
	return file, nil
}

// Update は名前とフォルダを更新します
func (r *FileRepository) Update(ctx context.Context, file *entity.File) error {
	tag, err := r.Querier(ctx).Exec(ctx,
		`UPDATE files SET name = $2, folder_id = $3 WHERE id = $1`,
		file.ID, file.Name.Value(), uuidToPgtype(file.FolderID),
	)
	return r.HandleError(database.RequireAffected(tag, err))
}

// Delete はファイルを削除します
func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	return r.HandleError(database.RequireAffected(tag, err))
}

// FindByIDs は複数IDでファイルを検索します
func (r *FileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.File, error) {
	if len(ids) == 0 {
		return []*entity.File{}, nil
	}
	return r.query(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ANY($1)`, ids)
}

// FindByFolderID はフォルダ直下のファイルを名前順で返します。folderIDがnilならルート直下です
func (r *FileRepository) FindByFolderID(ctx context.Context, workspaceID uuid.UUID, folderID *uuid.UUID) ([]*entity.File, error) {
	return r.query(ctx,
		`SELECT `+fileColumns+` FROM files
		 WHERE workspace_id = $1 AND folder_id IS NOT DISTINCT FROM $2
		 ORDER BY name`,
		workspaceID, uuidToPgtype(folderID),
	)
}

// FindByFolderIDs は複数フォルダ直下のファイルをまとめて返します
func (r *FileRepository) FindByFolderIDs(ctx context.Context, folderIDs []uuid.UUID) ([]*entity.File, error) {
	if len(folderIDs) == 0 {
		return []*entity.File{}, nil
	}
	return r.query(ctx,
		`SELECT `+fileColumns+` FROM files WHERE folder_id = ANY($1) ORDER BY folder_id, name`,
		folderIDs,
	)
}

// IsNameAvailable は同じフォルダに同名ファイルが無いかを返します
func (r *FileRepository) IsNameAvailable(
	ctx context.Context,
	workspaceID uuid.UUID,
	name valueobject.FileName,
	folderID *uuid.UUID,
	excludeID *uuid.UUID,
) (bool, error) {
	var available bool
	err := r.Querier(ctx).QueryRow(ctx,
		`SELECT NOT EXISTS (
			SELECT 1 FROM files
			WHERE workspace_id = $1 AND name = $2
			  AND folder_id IS NOT DISTINCT FROM $3
			  AND ($4::uuid IS NULL OR id <> $4)
		)`,
		workspaceID, name.Value(), uuidToPgtype(folderID), uuidToPgtype(excludeID),
	).Scan(&available)
	if err != nil {
		return false, r.HandleError(err)
	}
	return available, nil
}

// BulkDelete は複数ファイルを1文で削除します
func (r *FileRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.Querier(ctx).Exec(ctx, `DELETE FROM files WHERE id = ANY($1)`, ids)
	return r.HandleError(err)
}

// DetachLink はリンク由来の参照を外します
func (r *FileRepository) DetachLink(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (int64, error) {
	tag, err := r.Querier(ctx).Exec(ctx,
		`UPDATE files SET link_id = NULL WHERE workspace_id = $1 AND link_id = $2`,
		workspaceID, linkID,
	)
	if err != nil {
		return 0, r.HandleError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *FileRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.File, error) {
	rows, err := r.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, r.HandleError(err)
	}
	files, err := collect(rows, scanFile)
	if err != nil {
		return nil, r.HandleError(err)
	}
	if files == nil {
		files = []*entity.File{}
	}
	return files, nil
}

func scanFile(row rowScanner) (*entity.File, error) {
	var (
		id          uuid.UUID
		workspaceID uuid.UUID
		name        string
		mimeType    string
		size        int64
		storageKey  string
		attribution attributionScan
		createdAt   time.Time
	)
	folderID := uuidToPgtype(nil)

	dest := []any{&id, &workspaceID, &folderID, &name, &mimeType, &size, &storageKey}
	dest = append(dest, attribution.dest()...)
	dest = append(dest, &createdAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	key, err := valueobject.NewStorageKeyFromString(storageKey)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", id, err)
	}

	return entity.ReconstructFile(
		id,
		workspaceID,
		pgtypeToUUID(folderID),
		valueobject.ReconstructFileName(name),
		valueobject.ReconstructMimeType(mimeType),
		size,
		key,
		attribution.toEntity(),
		createdAt,
	), nil
}

var _ repository.FileRepository = (*FileRepository)(nil)
