package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
)

const folderColumns = "id, workspace_id, name, parent_id, " + attributionColumns + ", created_at"

// maxWalk は再帰クエリの打ち切り段数です。通常は深さ上限より十分大きい値です
const maxWalk = 1000

// FolderRepository はフォルダリポジトリの実装です
type FolderRepository struct {
	*database.BaseRepository
}

// NewFolderRepository は新しいFolderRepositoryを作成します
func NewFolderRepository(txManager *database.TxManager) *FolderRepository {
	return &FolderRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はフォルダを作成します
func (r *FolderRepository) Create(ctx context.Context, folder *entity.Folder) error {
	args := []any{folder.ID, folder.WorkspaceID, folder.Name.Value(), uuidToPgtype(folder.ParentID)}
	args = append(args, attributionArgs(folder.Attribution)...)
	args = append(args, folder.CreatedAt)

	_, err := r.Querier(ctx).Exec(ctx,
		`INSERT INTO folders (`+folderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		args...,
	)
	return r.HandleError(err)
}

// FindByID はIDでフォルダを検索します
func (r *FolderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Folder, error) {
	row := r.Querier(ctx).QueryRow(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = $1`, id)
	folder, err := scanFolder(row)
	if err != nil {
		return nil, r.HandleError(err)
	}
	return folder, nil
}

// FindByIDs は複数IDでフォルダを検索します。存在しないIDは結果に含まれません
func (r *FolderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Folder, error) {
	if len(ids) == 0 {
		return []*entity.Folder{}, nil
	}
	return r.query(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = ANY($1)`, ids)
}

// Update は名前と親を更新します
func (r *FolderRepository) Update(ctx context.Context, folder *entity.Folder) error {
	tag, err := r.Querier(ctx).Exec(ctx,
		`UPDATE folders SET name = $2, parent_id = $3 WHERE id = $1`,
		folder.ID, folder.Name.Value(), uuidToPgtype(folder.ParentID),
	)
	return r.HandleError(database.RequireAffected(tag, err))
}

// FindByParentID は直下の子フォルダを名前順で返します。parentIDがnilならルート直下です
func (r *FolderRepository) FindByParentID(ctx context.Context, workspaceID uuid.UUID, parentID *uuid.UUID) ([]*entity.Folder, error) {
	return r.query(ctx,
		`SELECT `+folderColumns+` FROM folders
		 WHERE workspace_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		 ORDER BY name`,
		workspaceID, uuidToPgtype(parentID),
	)
}

// GetAncestorChain はルートから指定フォルダ自身までの祖先を順に返します
func (r *FolderRepository) GetAncestorChain(ctx context.Context, folderID uuid.UUID) ([]*entity.Folder, error) {
	folders, err := r.query(ctx,
		`WITH RECURSIVE chain AS (
			SELECT `+folderColumns+`, 0 AS lvl FROM folders WHERE id = $1
			UNION ALL
			SELECT f.id, f.workspace_id, f.name, f.parent_id, f.link_id, f.uploader_email,
			       f.uploader_name, f.uploader_message, f.created_at, c.lvl + 1
			FROM folders f JOIN chain c ON f.id = c.parent_id
			WHERE c.lvl < $2
		)
		SELECT `+folderColumns+` FROM chain ORDER BY lvl DESC`,
		folderID, maxWalk,
	)
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		return nil, database.ErrNotFound
	}
	return folders, nil
}

// GetDepth はフォルダの深さを返します。ルート直下は0です
func (r *FolderRepository) GetDepth(ctx context.Context, folderID uuid.UUID) (int, error) {
	var depth *int
	err := r.Querier(ctx).QueryRow(ctx,
		`WITH RECURSIVE chain AS (
			SELECT id, parent_id, 0 AS lvl FROM folders WHERE id = $1
			UNION ALL
			SELECT f.id, f.parent_id, c.lvl + 1
			FROM folders f JOIN chain c ON f.id = c.parent_id
			WHERE c.lvl < $2
		)
		SELECT max(lvl) FROM chain`,
		folderID, maxWalk,
	).Scan(&depth)
	if err != nil {
		return 0, r.HandleError(err)
	}
	if depth == nil {
		return 0, database.ErrNotFound
	}
	return *depth, nil
}

// GetSubtreeHeight は指定フォルダから最も深い子孫までの段数を返します。子が無ければ0です
func (r *FolderRepository) GetSubtreeHeight(ctx context.Context, folderID uuid.UUID) (int, error) {
	var height *int
	err := r.Querier(ctx).QueryRow(ctx,
		`WITH RECURSIVE sub AS (
			SELECT id, 0 AS lvl FROM folders WHERE id = $1
			UNION ALL
			SELECT f.id, s.lvl + 1
			FROM folders f JOIN sub s ON f.parent_id = s.id
			WHERE s.lvl < $2
		)
		SELECT max(lvl) FROM sub`,
		folderID, maxWalk,
	).Scan(&height)
	if err != nil {
		return 0, r.HandleError(err)
	}
	if height == nil {
		return 0, database.ErrNotFound
	}
	return *height, nil
}

// FindSubtree は指定フォルダ自身と全子孫を浅い順に返します
func (r *FolderRepository) FindSubtree(ctx context.Context, folderID uuid.UUID) ([]*entity.Folder, error) {
	folders, err := r.query(ctx,
		`WITH RECURSIVE sub AS (
			SELECT `+folderColumns+`, 0 AS lvl FROM folders WHERE id = $1
			UNION ALL
			SELECT f.id, f.workspace_id, f.name, f.parent_id, f.link_id, f.uploader_email,
			       f.uploader_name, f.uploader_message, f.created_at, s.lvl + 1
			FROM folders f JOIN sub s ON f.parent_id = s.id
			WHERE s.lvl < $2
		)
		SELECT `+folderColumns+` FROM sub ORDER BY lvl, name`,
		folderID, maxWalk,
	)
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		return nil, database.ErrNotFound
	}
	return folders, nil
}

// IsNameAvailable は同じ親の下に同名フォルダが無いかを返します。excludeIDは比較から除外します
func (r *FolderRepository) IsNameAvailable(
	ctx context.Context,
	workspaceID uuid.UUID,
	name valueobject.FolderName,
	parentID *uuid.UUID,
	excludeID *uuid.UUID,
) (bool, error) {
	var available bool
	err := r.Querier(ctx).QueryRow(ctx,
		`SELECT NOT EXISTS (
			SELECT 1 FROM folders
			WHERE workspace_id = $1 AND name = $2
			  AND parent_id IS NOT DISTINCT FROM $3
			  AND ($4::uuid IS NULL OR id <> $4)
		)`,
		workspaceID, name.Value(), uuidToPgtype(parentID), uuidToPgtype(excludeID),
	).Scan(&available)
	if err != nil {
		return false, r.HandleError(err)
	}
	return available, nil
}

// BulkDelete は複数フォルダを1文で削除します
func (r *FolderRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.Querier(ctx).Exec(ctx, `DELETE FROM folders WHERE id = ANY($1)`, ids)
	return r.HandleError(err)
}

// DetachLink はリンク由来の参照を外します。アップロード者情報は残します
func (r *FolderRepository) DetachLink(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (int64, error) {
	tag, err := r.Querier(ctx).Exec(ctx,
		`UPDATE folders SET link_id = NULL WHERE workspace_id = $1 AND link_id = $2`,
		workspaceID, linkID,
	)
	if err != nil {
		return 0, r.HandleError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *FolderRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.Folder, error) {
	rows, err := r.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, r.HandleError(err)
	}
	folders, err := collect(rows, scanFolder)
	if err != nil {
		return nil, r.HandleError(err)
	}
	if folders == nil {
		folders = []*entity.Folder{}
	}
	return folders, nil
}

func scanFolder(row rowScanner) (*entity.Folder, error) {
	var (
		id          uuid.UUID
		workspaceID uuid.UUID
		name        string
		attribution attributionScan
		createdAt   time.Time
	)
	parentID := uuidToPgtype(nil)

	dest := []any{&id, &workspaceID, &name, &parentID}
	dest = append(dest, attribution.dest()...)
	dest = append(dest, &createdAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	return entity.ReconstructFolder(
		id,
		workspaceID,
		valueobject.ReconstructFolderName(name),
		pgtypeToUUID(parentID),
		attribution.toEntity(),
		createdAt,
	), nil
}

var _ repository.FolderRepository = (*FolderRepository)(nil)
