package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/request"
	"github.com/Hiro-mackay/linkdrop/internal/interface/middleware"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// currentUser は認証済みユーザーIDを取り出します
func currentUser(c echo.Context) (uuid.UUID, error) {
	userID := middleware.GetUserUUID(c)
	if userID == uuid.Nil {
		return uuid.Nil, apperror.NewUnauthorizedError("invalid token")
	}
	return userID, nil
}

// pathID はパスパラメータをUUIDとして解釈します
func pathID(c echo.Context, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewValidationError("invalid "+label+" ID", nil)
	}
	return id, nil
}

// optionalID はnullを許すID文字列を解釈します。nilはルートを表します
func optionalID(raw *string, label string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperror.NewValidationError("invalid "+label+" ID", nil)
	}
	return &id, nil
}

func parseIDs(raw []string, label string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperror.NewValidationError("invalid "+label+" ID", []apperror.FieldError{{Field: label + "Ids", Message: "invalid ID: " + s}})
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toAttribution(a request.Attribution) (entity.Attribution, error) {
	linkID, err := optionalID(a.LinkID, "link")
	if err != nil {
		return entity.Attribution{}, err
	}
	return entity.Attribution{
		LinkID:          linkID,
		UploaderEmail:   a.UploaderEmail,
		UploaderName:    a.UploaderName,
		UploaderMessage: a.UploaderMessage,
	}, nil
}

// bindAndValidate はリクエストボディを読み込み検証します
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	return c.Validate(req)
}
