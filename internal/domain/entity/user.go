package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// User representa un principal del sistema (solicitante, recolector o administrador).
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         authz.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre y apellidos.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Principal identidad que se embebe en el token.
func (u *User) Principal() authz.Principal {
	return authz.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// NormalizeEmail recorta y aplica case folding Unicode, de modo que la unicidad
// del correo no dependa de mayúsculas.
func NormalizeEmail(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NormalizeUserName igual que NormalizeEmail para el handle.
func NormalizeUserName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
