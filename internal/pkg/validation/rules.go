package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Roll number pattern - YY-[E]PROGRAM-NN, 2-or-3 digit serial
	RollNumberPattern = `^\d{2}-[A-Z]{2,10}-\d{2,3}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	RollNumber *regexp.Regexp
}{
	RollNumber: regexp.MustCompile(RollNumberPattern),
}

// validate is a shared validator instance; the Struct/Var API is safe for
// concurrent use.
var validate = validator.New()

// IsValidEmail reports whether s is a syntactically valid email address.
func IsValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// IsValidRollNumber reports whether s matches the roll number grammar.
func IsValidRollNumber(s string) bool {
	return CompiledPatterns.RollNumber.MatchString(s)
}
