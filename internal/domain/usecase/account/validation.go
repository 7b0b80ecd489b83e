package account

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amirhossein-jamali/account-opening-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-opening-service/internal/domain/error"
	usecaseport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/usecase"
)

// SubmissionValidator validates opening submissions inside the service, so
// the same rules apply no matter which transport delivered the request
type SubmissionValidator struct {
	validate *validator.Validate
}

// NewSubmissionValidator creates a new SubmissionValidator
func NewSubmissionValidator() *SubmissionValidator {
	return &SubmissionValidator{
		validate: validator.New(),
	}
}

// ValidateSubmission validates all fields of an opening submission without
// touching storage. The first violation found is returned.
func (v *SubmissionValidator) ValidateSubmission(req usecaseport.OpenAccountRequest) error {
	if req.User == nil {
		return errs.NewValidationError("user", "user data is required", errs.ErrMissingUser)
	}

	if err := v.validate.Struct(req); err != nil {
		return v.mapFieldError(err)
	}

	// Tag validation lets whitespace-only values through, so the emptiness
	// rules are re-checked on trimmed values
	if strings.TrimSpace(req.AccountTitle) == "" {
		return errs.NewValidationError("accountTitle", "account title is required", errs.ErrInvalidAccountTitle)
	}
	if strings.TrimSpace(req.AccountNumber) == "" {
		return errs.NewValidationError("accountNumber", "account number is required", errs.ErrInvalidAccountNumber)
	}
	if strings.TrimSpace(req.User.ID) == "" {
		return errs.NewValidationError("user.id", "user ID is required", errs.ErrInvalidUserID)
	}

	if !req.Status.IsValid() {
		return errs.NewValidationError("accountStatus",
			fmt.Sprintf("unknown status value %d", int(req.Status)), errs.ErrInvalidStatus)
	}

	if _, err := entity.ParseAmount(req.CurrentBalance); err != nil {
		return errs.NewValidationError("currentBalance", err.Error(), err)
	}

	return nil
}

// mapFieldError converts the first validator violation to a domain error
func (v *SubmissionValidator) mapFieldError(err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return errs.NewValidationError("request", err.Error(), errs.ErrInvalidRequest)
	}

	fe := fieldErrors[0]
	switch fe.StructField() {
	case "AccountTitle":
		return errs.NewValidationError("accountTitle", "account title is required", errs.ErrInvalidAccountTitle)
	case "AccountNumber":
		return errs.NewValidationError("accountNumber", "account number is required", errs.ErrInvalidAccountNumber)
	case "User":
		return errs.NewValidationError("user", "user data is required", errs.ErrMissingUser)
	case "ID":
		return errs.NewValidationError("user.id", "user ID is required", errs.ErrInvalidUserID)
	case "Email":
		if fe.Tag() == "email" {
			return errs.NewValidationError("user.email", "email address is malformed", errs.ErrInvalidEmail)
		}
		return errs.NewValidationError("user.email", "email address is required", errs.ErrInvalidEmail)
	default:
		return errs.NewValidationError(fe.Field(), fmt.Sprintf("failed on %q", fe.Tag()), errs.ErrInvalidRequest)
	}
}
