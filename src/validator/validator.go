package validator

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// CustomValidator は拡張バリデーション機能を提供
type CustomValidator struct {
	validator *validator.Validate
}

// ValidationError はバリデーションエラーの詳細情報
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationErrors は複数のバリデーションエラー
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d errors", len(ve.Errors))
}

// MemoIDParam はパスパラメータのメモID
type MemoIDParam struct {
	ID string `uri:"id" validate:"required,memo_id"`
}

// NewCustomValidator creates a new custom validator instance
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	cv := &CustomValidator{
		validator: v,
	}

	// カスタムバリデーションルールを登録
	v.RegisterValidation("memo_id", cv.validateMemoID)

	return cv
}

// Validate validates a struct and returns detailed error information
func (cv *CustomValidator) Validate(s interface{}) error {
	if err := cv.validator.Struct(s); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return err
		}

		validationErrors := make([]ValidationError, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Value:   fe.Value(),
				Message: cv.generateErrorMessage(fe),
			})
		}

		return ValidationErrors{Errors: validationErrors}
	}
	return nil
}

// ParseMemoID validates the raw path parameter and converts it to a memo ID
func (cv *CustomValidator) ParseMemoID(param MemoIDParam) (int64, error) {
	if err := cv.Validate(param); err != nil {
		return 0, err
	}
	// 0以下のIDは該当するメモが存在しないだけなので、ここでは弾かない
	return strconv.ParseInt(param.ID, 10, 64)
}

func (cv *CustomValidator) validateMemoID(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil
}

// generateErrorMessage generates user-friendly error messages
func (cv *CustomValidator) generateErrorMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s は必須項目です", field)
	case "memo_id":
		return fmt.Sprintf("%s は整数で指定してください", field)
	default:
		return fmt.Sprintf("%s が無効です (値: %v)", field, err.Value())
	}
}
