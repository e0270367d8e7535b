package client

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule es la regla declarativa de validación de un campo de formulario.
// La validación corre del lado cliente antes de mandar el request; si hay
// errores, el request no sale.
type Rule struct {
	Required  bool
	MinLength int
	Pattern   *regexp.Regexp
	// Message pisa el mensaje genérico cuando el patrón no matchea.
	Message string
}

// Schema mapea nombre de campo a su regla.
type Schema map[string]Rule

// Validate evalúa los valores contra el schema y devuelve los errores por
// campo. Mapa vacío = formulario válido.
func (s Schema) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)

	for field, rule := range s {
		v := strings.TrimSpace(values[field])

		if v == "" {
			if rule.Required {
				errs[field] = fmt.Sprintf("%s is required", field)
			}
			continue
		}
		if rule.MinLength > 0 && len(v) < rule.MinLength {
			errs[field] = fmt.Sprintf("%s must be at least %d characters", field, rule.MinLength)
			continue
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(v) {
			if rule.Message != "" {
				errs[field] = rule.Message
			} else {
				errs[field] = fmt.Sprintf("%s has an invalid format", field)
			}
		}
	}

	return errs
}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordPattern = regexp.MustCompile(`^(?:.*[A-Z].*)$`)
)

// LoginSchema valida el formulario de sign-in.
func LoginSchema() Schema {
	return Schema{
		"email":    {Required: true, Pattern: emailPattern, Message: "email has an invalid format"},
		"password": {Required: true, MinLength: 6},
	}
}

// RegisterSchema valida el formulario de registro (password con al menos
// una mayúscula, como exige el backend del provider).
func RegisterSchema() Schema {
	return Schema{
		"name":     {Required: true},
		"email":    {Required: true, Pattern: emailPattern, Message: "email has an invalid format"},
		"password": {Required: true, MinLength: 6, Pattern: passwordPattern, Message: "password needs an uppercase letter"},
	}
}
