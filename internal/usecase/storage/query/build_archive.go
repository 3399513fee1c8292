package query

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
	"github.com/Hiro-mackay/linkdrop/pkg/metrics"
)

// ArchiveConfig はアーカイブ生成の設定を定義します
type ArchiveConfig struct {
	URLExpiry   time.Duration
	MaxFiles    int
	Concurrency int
}

// DefaultArchiveConfig はデフォルト設定を返します
func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		URLExpiry:   DownloadURLExpiry,
		MaxFiles:    1000,
		Concurrency: 8,
	}
}

// BuildArchiveInput はアーカイブ生成の入力を定義します
type BuildArchiveInput struct {
	FileIDs   []uuid.UUID
	FolderIDs []uuid.UUID
	UserID    uuid.UUID
}

// ArchiveEntry はZIP内の1ファイルを表します
type ArchiveEntry struct {
	Path       string
	FileID     uuid.UUID
	StorageKey string
	Size       int64
	URL        string
	CreatedAt  time.Time
}

// ArchivePlan は生成前に解決済みのZIP構成です。全エントリの署名付きURLを持ちます
type ArchivePlan struct {
	Name        string
	Directories []string
	Entries     []ArchiveEntry
}

// TotalSize はエントリの合計サイズを返します
func (p *ArchivePlan) TotalSize() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.Size
	}
	return total
}

// BuildArchiveQuery は選択したファイル・フォルダを1つのZIPにまとめるクエリです。
// 直接選択したファイルはルートに、フォルダはサブツリーごと相対パスを保って配置します。
// 内容は短期の署名付きURL経由で取得します。
type BuildArchiveQuery struct {
	folderRepo     repository.FolderRepository
	fileRepo       repository.FileRepository
	storageService service.StorageService
	fetcher        service.ObjectFetcher
	ownership      service.OwnershipService
	config         ArchiveConfig
}

// NewBuildArchiveQuery は新しいBuildArchiveQueryを作成します
func NewBuildArchiveQuery(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	storageService service.StorageService,
	fetcher service.ObjectFetcher,
	ownership service.OwnershipService,
	config ArchiveConfig,
) *BuildArchiveQuery {
	defaults := DefaultArchiveConfig()
	if config.URLExpiry <= 0 {
		config.URLExpiry = defaults.URLExpiry
	}
	if config.MaxFiles <= 0 {
		config.MaxFiles = defaults.MaxFiles
	}
	if config.Concurrency < 1 {
		config.Concurrency = defaults.Concurrency
	}
	return &BuildArchiveQuery{
		folderRepo:     folderRepo,
		fileRepo:       fileRepo,
		storageService: storageService,
		fetcher:        fetcher,
		ownership:      ownership,
		config:         config,
	}
}

// Execute は構成の解決とZIPの書き込みを続けて行います
func (q *BuildArchiveQuery) Execute(ctx context.Context, input BuildArchiveInput, w io.Writer) (*ArchivePlan, error) {
	plan, err := q.Plan(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := q.Write(ctx, plan, w); err != nil {
		return nil, err
	}
	return plan, nil
}

// Plan は所有確認・パス解決・署名付きURL生成を行います。
// 1件でもURLを生成できなければ、欠けたZIPを作らずにエラーを返します。
func (q *BuildArchiveQuery) Plan(ctx context.Context, input BuildArchiveInput) (*ArchivePlan, error) {
	if len(input.FileIDs) == 0 && len(input.FolderIDs) == 0 {
		return nil, apperror.NewValidationError("at least one file or folder is required", []apperror.FieldError{
			{Field: "fileIds", Message: "fileIds or folderIds is required"},
		})
	}

	// 1. 全件の所有確認
	workspace, err := q.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	files, err := q.ownership.VerifyFiles(ctx, input.FileIDs, workspace.ID)
	if err != nil {
		return nil, err
	}
	folders, err := q.ownership.VerifyFolders(ctx, input.FolderIDs, workspace.ID)
	if err != nil {
		return nil, err
	}

	// 2. パス解決
	plan := &ArchivePlan{}
	used := make(map[string]struct{})

	for _, f := range files {
		plan.Entries = append(plan.Entries, newArchiveEntry(uniqueArchivePath(f.Name.Value(), used), f))
	}

	for _, folder := range folders {
		dirs, entries, err := q.resolveFolder(ctx, folder, uniqueArchivePath(folder.Name.Value(), used))
		if err != nil {
			return nil, err
		}
		plan.Directories = append(plan.Directories, dirs...)
		plan.Entries = append(plan.Entries, entries...)
	}

	if len(plan.Entries) > q.config.MaxFiles {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("archive may contain at most %d files, got %d", q.config.MaxFiles, len(plan.Entries)), nil)
	}

	sort.Strings(plan.Directories)
	sort.Slice(plan.Entries, func(i, j int) bool { return plan.Entries[i].Path < plan.Entries[j].Path })
	plan.Name = archiveName(files, folders)

	// 3. 存在確認と署名付きURLの生成を並行実行。1件でも失敗すれば中断
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(q.config.Concurrency)
	for i := range plan.Entries {
		entry := &plan.Entries[i]
		g.Go(func() error {
			return q.signEntry(gctx, entry)
		})
	}
	if err := g.Wait(); err != nil {
		metrics.ArchiveBuilds.WithLabelValues("failure").Inc()
		return nil, err
	}

	return plan, nil
}

// Write は解決済みの構成をZIPとしてwへ書き込みます
func (q *BuildArchiveQuery) Write(ctx context.Context, plan *ArchivePlan, w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, dir := range plan.Directories {
		if _, err := zw.CreateHeader(&zip.FileHeader{Name: dir + "/", Method: zip.Store}); err != nil {
			metrics.ArchiveBuilds.WithLabelValues("failure").Inc()
			return apperror.NewInternalError(err)
		}
	}

	for _, entry := range plan.Entries {
		if err := q.writeEntry(ctx, zw, entry); err != nil {
			metrics.ArchiveBuilds.WithLabelValues("failure").Inc()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		metrics.ArchiveBuilds.WithLabelValues("failure").Inc()
		return apperror.NewInternalError(err)
	}
	metrics.ArchiveBuilds.WithLabelValues("success").Inc()
	return nil
}

func (q *BuildArchiveQuery) writeEntry(ctx context.Context, zw *zip.Writer, entry ArchiveEntry) error {
	body, err := q.fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		return apperror.NewStorageOperationFailedError(fmt.Errorf("fetch %s: %w", entry.Path, err))
	}
	defer body.Close()

	fh := &zip.FileHeader{Name: entry.Path, Method: zip.Deflate}
	fh.Modified = entry.CreatedAt

	dst, err := zw.CreateHeader(fh)
	if err != nil {
		return apperror.NewInternalError(err)
	}
	if _, err := io.Copy(dst, body); err != nil {
		return apperror.NewStorageOperationFailedError(fmt.Errorf("copy %s: %w", entry.Path, err))
	}
	return nil
}

func (q *BuildArchiveQuery) signEntry(ctx context.Context, entry *ArchiveEntry) error {
	exists, err := q.storageService.ObjectExists(ctx, entry.StorageKey)
	if err != nil {
		return apperror.NewStorageOperationFailedError(fmt.Errorf("stat %s: %w", entry.Path, err))
	}
	if !exists {
		return apperror.NewNotFoundError(fmt.Sprintf("stored object for %q", entry.Path))
	}

	presigned, err := q.storageService.GenerateGetURL(ctx, entry.StorageKey, q.config.URLExpiry)
	if err != nil {
		return apperror.NewStorageOperationFailedError(fmt.Errorf("sign %s: %w", entry.Path, err))
	}
	entry.URL = presigned.URL
	return nil
}

// resolveFolder はフォルダのサブツリーをZIP内パスへ展開します
func (q *BuildArchiveQuery) resolveFolder(ctx context.Context, root *entity.Folder, rootPath string) ([]string, []ArchiveEntry, error) {
	subtree, err := q.folderRepo.FindSubtree(ctx, root.ID)
	if err != nil {
		return nil, nil, apperror.NewInternalError(err)
	}

	byID := make(map[uuid.UUID]*entity.Folder, len(subtree))
	ids := make([]uuid.UUID, 0, len(subtree))
	for _, f := range subtree {
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	paths := make(map[uuid.UUID]string, len(subtree))
	paths[root.ID] = rootPath
	var resolve func(f *entity.Folder) string
	resolve = func(f *entity.Folder) string {
		if p, ok := paths[f.ID]; ok {
			return p
		}
		parentPath := rootPath
		if f.ParentID != nil {
			if parent, ok := byID[*f.ParentID]; ok {
				parentPath = resolve(parent)
			}
		}
		paths[f.ID] = path.Join(parentPath, f.Name.Value())
		return paths[f.ID]
	}

	dirs := make([]string, 0, len(subtree))
	for _, f := range subtree {
		dirs = append(dirs, resolve(f))
	}

	files, err := q.fileRepo.FindByFolderIDs(ctx, ids)
	if err != nil {
		return nil, nil, apperror.NewInternalError(err)
	}

	entries := make([]ArchiveEntry, 0, len(files))
	for _, file := range files {
		if file.FolderID == nil {
			continue
		}
		dir, ok := paths[*file.FolderID]
		if !ok {
			continue
		}
		entries = append(entries, newArchiveEntry(path.Join(dir, file.Name.Value()), file))
	}
	return dirs, entries, nil
}

func newArchiveEntry(entryPath string, file *entity.File) ArchiveEntry {
	return ArchiveEntry{
		Path:       entryPath,
		FileID:     file.ID,
		StorageKey: file.StorageKey.String(),
		Size:       file.Size,
		CreatedAt:  file.CreatedAt,
	}
}

// uniqueArchivePath はZIPのルート直下で重複しない名前を返します
func uniqueArchivePath(name string, used map[string]struct{}) string {
	candidate := name
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		if _, exists := used[candidate]; !exists {
			break
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
	used[candidate] = struct{}{}
	return candidate
}

// archiveName はダウンロード時のZIPファイル名を決めます
func archiveName(files []*entity.File, folders []*entity.Folder) string {
	if len(files) == 0 && len(folders) == 1 {
		return folders[0].Name.Value() + ".zip"
	}
	return "archive-" + time.Now().UTC().Format("20060102-150405") + ".zip"
}
