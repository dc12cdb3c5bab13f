// Package validate rejects malformed registration and login submissions
// before they reach the backend.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"visitor-cli/pkg/models"
)

// Field names used as keys in Errors. They match the form tags.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPurpose  = "purpose"
	FieldPassword = "password"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "")
)

// messages holds the text shown for each field and failing rule.
var messages = map[string]map[string]string{
	FieldName: {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
	},
	FieldEmail: {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
	},
	FieldPhone: {
		"required": "Phone number is required",
		"phone":    "Please enter a valid phone number (10-15 digits)",
	},
	FieldPurpose: {
		"required": "Please select a purpose of visit",
		"purpose":  "Please select a valid purpose of visit",
	},
	FieldPassword: {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
}

var checker = newChecker()

func newChecker() *validator.Validate {
	v := validator.New()

	// Report fields by their form name so Errors keys match the inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(phoneStrip.Replace(fl.Field().String()))
	})
	mustRegister(v, "purpose", func(fl validator.FieldLevel) bool {
		return models.Purpose(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Errors maps a field to its message. Submission is blocked while it is non-empty.
type Errors map[string]string

// Any reports whether any field failed.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Clear drops the error for a field the user just edited.
// The field is not re-validated until the next submit.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// Fields returns the failing field names in stable order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// VisitorForm is the public check-in form as typed by the visitor.
type VisitorForm struct {
	Name    string `form:"name" json:"name" validate:"required,min=2"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Phone   string `form:"phone" json:"phone" validate:"required,phone"`
	Purpose string `form:"purpose" json:"purpose" validate:"required,purpose"`
	Host    string `form:"host" json:"host"`
	Message string `form:"message" json:"message"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f VisitorForm) Trimmed() VisitorForm {
	return VisitorForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Purpose: strings.TrimSpace(f.Purpose),
		Host:    strings.TrimSpace(f.Host),
		Message: strings.TrimSpace(f.Message),
	}
}

// LoginForm is the admin login form.
type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
}

// Visitor validates the check-in form after trimming. Host and message are unconstrained.
func Visitor(f VisitorForm) Errors {
	return check(f.Trimmed())
}

// Login validates the admin login form. The password is taken as typed.
func Login(email, password string) Errors {
	return check(LoginForm{Email: strings.TrimSpace(email), Password: password})
}

func check(form any) Errors {
	errs := Errors{}

	var failed validator.ValidationErrors
	if !errors.As(checker.Struct(form), &failed) {
		return errs
	}
	for _, fe := range failed {
		msg := messages[fe.Field()][fe.Tag()]
		if msg == "" {
			msg = fe.Error()
		}
		errs[fe.Field()] = msg
	}
	return errs
}
