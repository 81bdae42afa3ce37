// Package validation holds the field-level and form-level input checks run
// before any network call. Validators never panic and never do I/O; they
// return structured pass/fail results the form views render per field.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of a single field validation.
type Result struct {
	OK    bool
	Error string
}

// FormResult aggregates field validations. Errors holds a message per
// failing field only; this is the exact shape the form error display
// consumes.
type FormResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Minimal "text@text.text" shape; anything stricter rejects real addresses.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateEmail checks that the email is present and minimally shaped.
func ValidateEmail(email string) Result {
	if strings.TrimSpace(email) == "" {
		return Result{Error: "Email is required"}
	}
	if !emailPattern.MatchString(email) {
		return Result{Error: "Please enter a valid email"}
	}
	return Result{OK: true}
}

// ValidatePassword checks presence and a minimum length of 6.
func ValidatePassword(password string) Result {
	if strings.TrimSpace(password) == "" {
		return Result{Error: "Password is required"}
	}
	if len(password) < 6 {
		return Result{Error: "Password must be at least 6 characters"}
	}
	return Result{OK: true}
}

// ValidateName checks presence and a minimum length of 2 after trimming.
func ValidateName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Result{Error: "Name is required"}
	}
	if len(trimmed) < 2 {
		return Result{Error: "Name must be at least 2 characters"}
	}
	return Result{OK: true}
}

// ValidateRequired is the generic required-field check for arbitrary named
// fields.
func ValidateRequired(value, fieldName string) Result {
	if strings.TrimSpace(value) == "" {
		return Result{Error: fmt.Sprintf("%s is required", fieldName)}
	}
	return Result{OK: true}
}

// ValidateLoginForm composes the login field validators.
func ValidateLoginForm(email, password string) FormResult {
	errors := map[string]string{}
	if r := ValidateEmail(email); !r.OK {
		errors["email"] = r.Error
	}
	if r := ValidatePassword(password); !r.OK {
		errors["password"] = r.Error
	}
	return FormResult{Valid: len(errors) == 0, Errors: errors}
}

// ValidateSignupForm composes the signup field validators.
func ValidateSignupForm(name, email, password string) FormResult {
	errors := map[string]string{}
	if r := ValidateName(name); !r.OK {
		errors["name"] = r.Error
	}
	if r := ValidateEmail(email); !r.OK {
		errors["email"] = r.Error
	}
	if r := ValidatePassword(password); !r.OK {
		errors["password"] = r.Error
	}
	return FormResult{Valid: len(errors) == 0, Errors: errors}
}
