package validation

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Roll number pattern - alphanumeric with optional separators, 3 to 20 chars
	RollNumberPattern = `^[A-Za-z0-9][A-Za-z0-9/\-]{2,19}$`

	// Contact number pattern - digits with optional leading +, 7 to 15 digits
	ContactNumberPattern = `^\+?\d{7,15}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	RollNumber    *regexp.Regexp
	ContactNumber *regexp.Regexp
}{
	RollNumber:    regexp.MustCompile(RollNumberPattern),
	ContactNumber: regexp.MustCompile(ContactNumberPattern),
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance with domain rules registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("rollnumber", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.RollNumber.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("contactnumber", func(fl validator.FieldLevel) bool {
			val := fl.Field().String()
			// Contact number is optional on several inputs
			if val == "" {
				return true
			}
			return CompiledPatterns.ContactNumber.MatchString(val)
		})
	})
	return validate
}
