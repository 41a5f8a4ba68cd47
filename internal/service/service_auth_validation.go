package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// ValidationError carries field-keyed validation messages so the HTTP layer
// can serialize them into the {message, errors} reply body. It wraps
// [ErrValidationFailed] for errors.Is matching.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// newValidationError builds a single-field ValidationError.
func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// emailLocalPattern accepts the characters permitted in the local part of an
// address; emailDomainPattern requires a dotted domain with an alphabetic
// final label.
var (
	emailLocalPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+$`)
	emailDomainPattern = regexp.MustCompile(`^[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)
)

// validateRegistration checks every field of a registration request and
// collects all failures into a single [ValidationError]. Returns nil when
// the request is valid.
func validateRegistration(request models.RegisterRequest) error {
	fields := make(map[string][]string)

	if messages := validateEmail(request.Email); len(messages) > 0 {
		fields["email"] = messages
	}
	if messages := validatePassword(request.Password); len(messages) > 0 {
		fields["password"] = messages
	}
	if strings.TrimSpace(request.Name) == "" {
		fields["name"] = []string{"name is required"}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// validateEmail applies the address shape rules: total length 5..254, a
// single "@", local part of at most 64 characters drawn from the permitted
// set, a dotted domain, and no consecutive dots anywhere.
func validateEmail(email string) []string {
	if email == "" {
		return []string{"email is required"}
	}

	var messages []string

	if len(email) < 5 || len(email) > 254 {
		messages = append(messages, "email must be between 5 and 254 characters")
	}
	if strings.Count(email, "@") != 1 {
		return append(messages, "email must contain exactly one @")
	}
	if strings.Contains(email, "..") {
		messages = append(messages, "email must not contain consecutive dots")
	}

	local, domain, _ := strings.Cut(email, "@")

	if local == "" || len(local) > 64 {
		messages = append(messages, "email local part must be between 1 and 64 characters")
	} else if !emailLocalPattern.MatchString(local) {
		messages = append(messages, "email contains invalid characters")
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		messages = append(messages, "email local part must not start or end with a dot")
	}

	if !emailDomainPattern.MatchString(domain) {
		messages = append(messages, "email domain is invalid")
	}

	return messages
}

// maxPasswordBytes is bcrypt's input limit: GenerateFromPassword rejects
// anything longer, so the bound must be enforced here as a validation
// failure rather than surfacing later as a hashing error.
const maxPasswordBytes = 72

// validatePassword applies the strength rules: 8..72 bytes with at least one
// letter and one digit.
func validatePassword(password string) []string {
	if password == "" {
		return []string{"password is required"}
	}

	var messages []string

	if len(password) < 8 {
		messages = append(messages, "password must be at least 8 characters")
	}
	if len(password) > maxPasswordBytes {
		messages = append(messages, "password must be at most 72 characters")
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		messages = append(messages, "password must contain at least one letter")
	}
	if !hasDigit {
		messages = append(messages, "password must contain at least one digit")
	}

	return messages
}
