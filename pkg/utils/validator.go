package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("device_model", validateDeviceModel)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDeviceModel(fl validator.FieldLevel) bool {
	model := fl.Field().String()
	validModels := []string{"chromebook", "projector", "hotspot", "tablet", "other"}

	for _, validModel := range validModels {
		if model == validModel {
			return true
		}
	}
	return false
}
