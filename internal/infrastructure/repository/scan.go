package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
)

// rowScanner はpgx.Rowとpgx.Rowsの共通部分です
type rowScanner interface {
	Scan(dest ...any) error
}

// attributionColumns はフォルダ・ファイル共通の由来情報カラムです
const attributionColumns = "link_id, uploader_email, uploader_name, uploader_message"

// attributionScan はScan先を保持し、読み出し後にentity.Attributionへ変換します
type attributionScan struct {
	linkID  pgtype.UUID
	email   *string
	name    *string
	message *string
}

func (a *attributionScan) dest() []any {
	return []any{&a.linkID, &a.email, &a.name, &a.message}
}

func (a *attributionScan) toEntity() entity.Attribution {
	return entity.Attribution{
		LinkID:          pgtypeToUUID(a.linkID),
		UploaderEmail:   a.email,
		UploaderName:    a.name,
		UploaderMessage: a.message,
	}
}

func attributionArgs(a entity.Attribution) []any {
	return []any{uuidToPgtype(a.LinkID), a.UploaderEmail, a.UploaderName, a.UploaderMessage}
}

// collect は行セットを全件読み出します
func collect[T any](rows pgx.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	var result []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// uuidToPgtype はuuid.UUIDをpgtype.UUIDに変換します
func uuidToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// pgtypeToUUID はpgtype.UUIDを*uuid.UUIDに変換します
func pgtypeToUUID(pg pgtype.UUID) *uuid.UUID {
	if !pg.Valid {
		return nil
	}
	id := uuid.UUID(pg.Bytes)
	return &id
}
