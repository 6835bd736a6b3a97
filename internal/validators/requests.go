package validators

import (
	"context"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-expense-ledger/models"
)

const (
	FieldName            = "name"
	FieldColor           = "color"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"

	// MinPasswordLength applies to new passwords at registration and change.
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt will hash.
	MaxPasswordBytes = 72

	maxCategoryNameLength = 64
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RequestValidator checks account and category payloads. When field names
// are passed to Validate only those fields are checked.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CategoryRequest:
		return v.validateCategory(ctx, value, fields...)
	case *models.CategoryRequest:
		return v.validateCategory(ctx, *value, fields...)

	case models.RegisterRequest:
		return v.validateRegister(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLogin(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateCategory(_ context.Context, req models.CategoryRequest, fields ...string) error {
	for _, field := range fieldsOrDefault(fields, FieldName, FieldColor) {
		switch field {
		case FieldName:
			name := strings.TrimSpace(req.Name)
			if name == "" || utf8.RuneCountInString(name) > maxCategoryNameLength {
				return fieldError(FieldName, ErrInvalidCategoryName)
			}
		case FieldColor:
			if req.Color != nil && *req.Color != "" && !colorPattern.MatchString(*req.Color) {
				return fieldError(FieldColor, ErrInvalidColor)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateRegister(_ context.Context, req models.RegisterRequest, fields ...string) error {
	for _, field := range fieldsOrDefault(fields, FieldName, FieldEmail, FieldPassword) {
		switch field {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				return fieldError(FieldName, ErrEmptyName)
			}
		case FieldEmail:
			if err := validateEmail(req.Email); err != nil {
				return fieldError(FieldEmail, err)
			}
		case FieldPassword:
			if err := validateNewPassword(req.Password); err != nil {
				return fieldError(FieldPassword, err)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateLogin(_ context.Context, req models.LoginRequest, fields ...string) error {
	for _, field := range fieldsOrDefault(fields, FieldEmail, FieldPassword) {
		switch field {
		case FieldEmail:
			if strings.TrimSpace(req.Email) == "" {
				return fieldError(FieldEmail, ErrInvalidEmail)
			}
		case FieldPassword:
			if req.Password == "" {
				return fieldError(FieldPassword, ErrEmptyPassword)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateChangePassword(_ context.Context, req models.ChangePasswordRequest, fields ...string) error {
	for _, field := range fieldsOrDefault(fields, FieldCurrentPassword, FieldNewPassword) {
		switch field {
		case FieldCurrentPassword:
			if req.CurrentPassword == "" {
				return fieldError(FieldCurrentPassword, ErrEmptyPassword)
			}
		case FieldNewPassword:
			if err := validateNewPassword(req.NewPassword); err != nil {
				return fieldError(FieldNewPassword, err)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || strings.TrimSpace(email) != email {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func validateNewPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func fieldsOrDefault(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return slices.Clone(fields)
}
