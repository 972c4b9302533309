package validator

import (
	"errors"
	"fmt"
	"strings"

	"sandgrund/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	log.Info("User validator initialized successfully")
	return &UserValidator{validate: validator.New(), logger: log}
}

// Validate checks any of the request structs in model (SignUpRequest,
// Credentials, ResetRequest, NewPasswordRequest, UserUpdate).
func (v *UserValidator) Validate(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("Please provide your %s", strings.ToLower(fe.Field())))
		case "email":
			out = append(out, "Please provide a valid email")
		case "min":
			out = append(out, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			out = append(out, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "eqfield":
			out = append(out, "Passwords are not the same!")
		default:
			out = append(out, fe.Error())
		}
	}
	return out
}
