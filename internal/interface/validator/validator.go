package validator

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// CustomValidator はEcho用のカスタムバリデーターです
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator は新しいCustomValidatorを作成します
func NewCustomValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 名前の規則はドメインの値オブジェクトと同じものを使います
	_ = v.RegisterValidation("filename", validateFileName)
	_ = v.RegisterValidation("foldername", validateFolderName)

	return &CustomValidator{validator: v}
}

// Validate はリクエストを検証します
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.NewValidationError(err.Error(), nil)
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, apperror.FieldError{
			Field:   lowerFirst(e.Field()),
			Message: getValidationMessage(e),
		})
	}

	return apperror.NewValidationError("validation failed", details)
}

func validateFileName(fl validator.FieldLevel) bool {
	_, err := valueobject.NewFileName(fl.Field().String())
	return err == nil
}

func validateFolderName(fl validator.FieldLevel) bool {
	_, err := valueobject.NewFolderName(fl.Field().String())
	return err == nil
}

// getValidationMessage はバリデーションエラーメッセージを返します
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "uuid":
		return "must be a valid UUID"
	case "filename", "foldername":
		return "must be 1-255 characters without / \\ : * ? \" < > | or control characters, and not . or .."
	case "gte":
		return "must be greater than or equal to " + e.Param()
	default:
		return "validation failed"
	}
}

// lowerFirst はGoのフィールド名をJSONのcamelCaseに寄せます
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return strings.Replace(string(r), "ID", "Id", 1)
}
