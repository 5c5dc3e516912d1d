package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/search"
	"github.com/harentsoaR/healthease-api/internal/session"
)

// RegisterValidators adds the portal's binding tags to gin's validator:
//
//	portalrole   one of patient, doctor, admin
//	clock        a 12-hour time such as "9:15 AM"
//	userstatus   one of active, inactive, pending
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	rules := map[string]validator.Func{
		"portalrole": func(fl validator.FieldLevel) bool {
			_, ok := session.ParseRole(fl.Field().String())
			return ok
		},
		"clock": func(fl validator.FieldLevel) bool {
			_, ok := search.ClockMinutes(fl.Field().String())
			return ok
		},
		"userstatus": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseUserStatus(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
