package command

import (
	"errors"

	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// mutationError は更新系リポジトリエラーをAppErrorへ変換します。
// 一意制約違反は検証と書き込みの間の競合として名前衝突に読み替えます。
func mutationError(err error, name string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	if errors.Is(err, repository.ErrConflict) {
		return apperror.NewNameCollisionError(name)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFoundError("resource")
	}
	return apperror.NewInternalError(err)
}
