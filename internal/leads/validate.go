package leads

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Deliberately permissive; full RFC 5322 parsing buys nothing for a
// contact form.
var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks a submission and returns every violation found, in
// field order. It never short-circuits, so a single response can report
// all problems at once. An empty result means the submission is valid.
func Validate(s *Submission) []string {
	var errs []string

	nombre := strings.TrimSpace(string(s.Nombre))
	if n := utf8.RuneCountInString(nombre); n < 2 || n > 100 {
		errs = append(errs, "Name must be between 2 and 100 characters")
	}

	email := strings.ToLower(strings.TrimSpace(string(s.Email)))
	if !emailRx.MatchString(email) || len(email) > 254 {
		errs = append(errs, "Invalid email address")
	}

	// An absent or empty phone is valid; only a non-empty one with an
	// out-of-range digit count is an error.
	if digits := digitsOnly(string(s.Telefono)); digits != "" && (len(digits) < 9 || len(digits) > 15) {
		errs = append(errs, "Phone must be 9-15 digits")
	}

	mensaje := strings.TrimSpace(string(s.Mensaje))
	if n := utf8.RuneCountInString(mensaje); n < 10 || n > 2000 {
		errs = append(errs, "Message must be between 10 and 2000 characters")
	}

	return errs
}
