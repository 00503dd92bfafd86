package service

import (
	"crypto/subtle"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

var telPattern = regexp.MustCompile(`^0\d{9}$`)

// newValidator returns validate (or a fresh instance) with the project's custom tags registered.
func newValidator(validate *validator.Validate) *validator.Validate {
	if validate == nil {
		validate = validator.New()
	}
	_ = validate.RegisterValidation("tel", func(fl validator.FieldLevel) bool {
		return telPattern.MatchString(fl.Field().String())
	})
	return validate
}

// validationError turns validator output into a client error with a readable message.
// A missing required field takes precedence over format failures.
func validationError(err error, fallback string) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fallback)
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "all required fields must be filled in")
		}
	}
	fe := fieldErrs[0]
	msg := fallback
	switch {
	case fe.Tag() == "tel":
		msg = "invalid phone number (must be 10 digits starting with 0)"
	case fe.Tag() == "min" && fe.Field() == "Password":
		msg = "password must be at least " + fe.Param() + " characters"
	case fe.Tag() == "max":
		msg = strings.ToLower(fe.Field()) + " is too long"
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msg)
}

// passwordMatches compares a login attempt with the stored credential. Stored bcrypt
// hashes are verified with bcrypt; anything else is a legacy plain-text value compared
// in constant time.
func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// storedPassword returns the value persisted for a new password.
func storedPassword(plain string, hash bool) (string, error) {
	if !hash {
		return plain, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
