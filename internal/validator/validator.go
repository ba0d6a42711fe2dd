// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches short exchange ticker codes: 1 to 5 letters.
var tickerRegex = regexp.MustCompile(`^[A-Za-z]{1,5}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("sort_field", validateSortField)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateSortField(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "symbol", "company_name":
		return true
	}
	return false
}
