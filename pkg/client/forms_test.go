package client

import "testing"

func TestSchema_ValidFormHasNoErrors(t *testing.T) {
	errs := RegisterSchema().Validate(map[string]string{
		"name":     "Ana Paz",
		"email":    "ana@example.com",
		"password": "Secreta1",
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestSchema_FieldRules(t *testing.T) {
	cases := []struct {
		name      string
		schema    Schema
		values    map[string]string
		wantField string
	}{
		{
			name:      "required field missing",
			schema:    LoginSchema(),
			values:    map[string]string{"password": "Secreta1"},
			wantField: "email",
		},
		{
			name:      "whitespace counts as empty",
			schema:    LoginSchema(),
			values:    map[string]string{"email": "   ", "password": "Secreta1"},
			wantField: "email",
		},
		{
			name:      "email format",
			schema:    LoginSchema(),
			values:    map[string]string{"email": "not-an-email", "password": "Secreta1"},
			wantField: "email",
		},
		{
			name:      "password too short",
			schema:    LoginSchema(),
			values:    map[string]string{"email": "ana@example.com", "password": "Ab1"},
			wantField: "password",
		},
		{
			name:      "password needs uppercase",
			schema:    RegisterSchema(),
			values:    map[string]string{"name": "Ana", "email": "ana@example.com", "password": "secreta1"},
			wantField: "password",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.schema.Validate(tc.values)
			if errs[tc.wantField] == "" {
				t.Fatalf("expected error on %q, got %v", tc.wantField, errs)
			}
		})
	}
}

func TestSchema_PatternMessageOverridesGeneric(t *testing.T) {
	errs := RegisterSchema().Validate(map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	if got := errs["password"]; got != "password needs an uppercase letter" {
		t.Fatalf("message = %q", got)
	}
}
