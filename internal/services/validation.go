package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError は必須項目が空の場合のエラーです。ストアへの呼び出し前に検出されます。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// OwnerForm は「Add New Owner」フォームの入力です。
// フィールドは検証順 (name → email) に並べています。
type OwnerForm struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required"`
}

// TaskForm は「Add a New Task」フォームの入力です。
// フィールドは検証順 (verb → direct_object → owner) に並べています。
type TaskForm struct {
	Verb         string `form:"verb" validate:"required"`
	DirectObject string `form:"direct_object" validate:"required"`
	Owner        string `form:"owner" validate:"required"`
}

var fieldMessages = map[string]string{
	"OwnerForm.Name":        "Owner name is required.",
	"OwnerForm.Email":       "Owner email is required.",
	"TaskForm.Verb":         "Work action is required.",
	"TaskForm.DirectObject": "Work product is required.",
	"TaskForm.Owner":        "Please select a recipient.",
}

var fieldNames = map[string]string{
	"Name":         "name",
	"Email":        "email",
	"Verb":         "verb",
	"DirectObject": "direct_object",
	"Owner":        "owner",
}

func (f *OwnerForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

func (f *TaskForm) normalize() {
	f.Verb = strings.TrimSpace(f.Verb)
	f.DirectObject = strings.TrimSpace(f.DirectObject)
	f.Owner = strings.TrimSpace(f.Owner)
}

// validateForm は最初に失敗したフィールドを ValidationError として返します。
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	msg, ok := fieldMessages[first.StructNamespace()]
	if !ok {
		msg = "This field is required."
	}
	return &ValidationError{Field: fieldNames[first.StructField()], Message: msg}
}
