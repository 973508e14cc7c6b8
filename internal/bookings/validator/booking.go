package validator

import (
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"carrental/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to set up booking validator", "error", err)
	}

	v.RegisterStructValidation(validateDateRange, model.SearchCriteriaRequest{})

	return &BookingValidator{
		validate: v,
		log:      log,
	}
}

// validateDateRange rejects an end date before the start date. Malformed
// dates are left to the booking_date tag.
func validateDateRange(sl validator.StructLevel) {
	criteria := sl.Current().Interface().(model.SearchCriteriaRequest)

	start, err := validation.ParseDate(criteria.StartDate)
	if err != nil {
		return
	}
	end, err := validation.ParseDate(criteria.EndDate)
	if err != nil {
		return
	}

	if end.Before(start) {
		sl.ReportError(criteria.EndDate, "endDate", "EndDate", "not_before", "startDate")
	}
}

func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if err := validation.Struct(v.validate, req); err != nil {
		v.log.Debug("Booking request rejected", "error", err)
		return err
	}
	return nil
}
