package validator

import (
	"errors"
	"fmt"
	"strings"

	"sandgrund/pkg/logger"
	"sandgrund/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type GuideValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewGuideValidator(log *logger.Logger) *GuideValidator {
	log.Info("Guide validator initialized successfully")
	return &GuideValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *GuideValidator) Validate(guide *model.Guide) error {
	return v.check(guide)
}

func (v *GuideValidator) ValidateUpdate(update *model.GuideUpdate) error {
	return v.check(update)
}

func (v *GuideValidator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		message := fe.Error()
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid e-mail address", fe.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", fe.Field())
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: message})
	}
	return out
}
