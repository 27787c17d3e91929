package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"goremind/internal/reminders/app/dto"
	"goremind/internal/reminders/domain/entities"
)

const tagNotBlank = "notblank"

// Правила полей напоминания, общие для создания и обновления.
var (
	titleRule       = fmt.Sprintf("required,%s,max=%d", tagNotBlank, dto.MaxTitleLength)
	descriptionRule = fmt.Sprintf("max=%d", dto.MaxDescriptionLength)
)

// Validator проверяет формы запросов по правилам полей напоминания.
type Validator struct {
	validate *validator.Validate
}

// NewValidator создает валидатор, сообщающий имена полей в виде JSON-ключей.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(tagNotBlank, validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterStructValidationMapRules(map[string]string{
		"Title":       titleRule,
		"Description": "omitempty," + descriptionRule,
	}, dto.CreateReminderRequest{})
	return &Validator{validate: v}
}

// ValidateCreate проверяет запрос на создание.
func (v *Validator) ValidateCreate(req *dto.CreateReminderRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ValidatePatch проверяет поля, переданные в запросе на обновление.
func (v *Validator) ValidatePatch(req *dto.UpdateReminderRequest) error {
	var fields []string

	if req.Title.Set {
		if req.Title.Null {
			fields = append(fields, "title must not be null")
		} else if err := v.validate.Var(req.Title.Value, titleRule); err != nil {
			fields = append(fields, fieldMessages("title", err)...)
		}
	}
	if req.Description.Set && !req.Description.Null {
		if err := v.validate.Var(req.Description.Value, descriptionRule); err != nil {
			fields = append(fields, fieldMessages("description", err)...)
		}
	}

	if len(fields) > 0 {
		return entities.NewValidationError(fields...)
	}
	return nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", entities.ErrValidation, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, formatFieldError(fe.Field(), fe))
	}
	return entities.NewValidationError(fields...)
}

func fieldMessages(field string, err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("%s is invalid", field)}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, formatFieldError(field, fe))
	}
	return out
}

func formatFieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", tagNotBlank:
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
