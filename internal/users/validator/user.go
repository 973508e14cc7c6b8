package validator

import (
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"carrental/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type UserValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to set up user validator", "error", err)
	}
	return &UserValidator{validate: v, log: log}
}

func (v *UserValidator) ValidateRegister(req *model.RegisterRequest) error {
	return validation.Struct(v.validate, req)
}

func (v *UserValidator) ValidateRequestOTP(req *model.RequestOTPRequest) error {
	return validation.Struct(v.validate, req)
}

func (v *UserValidator) ValidateVerifyOTP(req *model.VerifyOTPRequest) error {
	return validation.Struct(v.validate, req)
}
