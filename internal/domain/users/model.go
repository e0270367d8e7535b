package users

import "time"

// Role define los roles soportados.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User representa la cuenta creada en el primer sign-in.
// PasswordHash solo existe para cuentas locales (modo credenciales);
// las cuentas de provider social lo dejan vacío.
type User struct {
	ID string

	Name     string
	Email    string
	PhotoURL string
	Role     Role

	Phone   string
	Address string

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
