package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

// validationError maps validator failures on the Term and Grade fields to the
// dedicated choice errors; everything else is a generic validation error.
func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Term":
				return appErrors.Wrap(err, appErrors.ErrInvalidTermChoice.Code, appErrors.ErrInvalidTermChoice.Status, appErrors.ErrInvalidTermChoice.Message)
			case "Grade":
				return appErrors.Wrap(err, appErrors.ErrInvalidGradeChoice.Code, appErrors.ErrInvalidGradeChoice.Status, appErrors.ErrInvalidGradeChoice.Message)
			}
		}
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
