// Package validation valida los DTOs de entrada con go-playground/validator y traduce los
// fallos a domain.ValidationError con mensajes en español por campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
)

var userNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los nombres de campo en los errores son los del JSON, que es lo que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return ValidUserName(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

// ValidUserName entre 3 y 20 caracteres: letras, números y guion bajo.
func ValidUserName(s string) bool {
	return userNameRegex.MatchString(s)
}

// StrongPassword al menos 8 caracteres con mayúscula, minúscula, número y símbolo.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Struct valida s. Devuelve nil o un *domain.ValidationError (errors.Is(err, domain.ErrValidation)).
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	fields := make(map[string]string, len(verrs))
	var first string
	for _, fe := range verrs {
		msg := message(fe)
		fields[fe.Field()] = msg
		if first == "" {
			first = msg
		}
	}
	return domain.NewValidationError(first, fields)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "email":
		return "el formato del correo electrónico no es válido"
	case "username":
		return "el nombre de usuario debe tener entre 3 y 20 caracteres y solo puede contener letras, números y guiones bajos"
	case "strongpassword":
		return "la contraseña debe tener al menos 8 caracteres, una mayúscula, una minúscula, un número y un carácter especial"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s debe ser un UUID válido", field)
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s debe ser menor que %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}
