package utils

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("payment_type", validatePaymentType)
	v.RegisterValidation("notification_type", validateNotificationType)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func validatePaymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "FREE", "CARD", "CASH":
		return true
	}
	return false
}

func validateNotificationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "24_HOURS", "48_HOURS", "7_DAYS":
		return true
	}
	return false
}
