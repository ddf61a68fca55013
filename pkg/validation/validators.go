package validation

import (
	"reflect"
	"strings"
	"sync"

	"go-jobportal-backend/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("role", ValidRole)
	_ = v.RegisterValidation("appstatus", ValidApplicationStatus)

	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// RegisterWithGin installs the custom tags on gin's binding validator. Safe to call
// more than once.
func RegisterWithGin() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			RegisterValidators(v)
		}
	})
}

// ValidRole accepts CANDIDATE, RECRUITER and ADMIN. Empty is left to required.
func ValidRole(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return domain.Role(val).Valid()
}

// ValidApplicationStatus accepts any declared application status.
func ValidApplicationStatus(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return domain.ApplicationStatus(val).Valid()
}

// New returns a validator that reads the same `binding` tags gin uses, with the
// custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidators(v)
	return v
}
