package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/jwt"
)

// LocalPrincipal clave de c.Locals con el *authz.Principal autenticado.
const LocalPrincipal = "principal"

// Códigos de error de autenticación. El mensaje es el mismo para los tres.
const (
	CodeMissingToken = "MISSING_TOKEN"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeInvalidToken = "INVALID_TOKEN"

	msgUnauthenticated = "no autenticado"
)

// TokenParser valida un token y devuelve sus claims. Lo implementa *jwt.Manager.
type TokenParser interface {
	Parse(token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token y deja el principal en c.Locals.
func AuthMiddleware(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authHeader == "" {
			return unauthenticated(c, CodeMissingToken)
		}
		scheme, tokenString, _ := strings.Cut(authHeader, " ")
		if !strings.EqualFold(scheme, "Bearer") {
			return unauthenticated(c, CodeInvalidToken)
		}
		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			return unauthenticated(c, CodeMissingToken)
		}
		claims, err := tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return unauthenticated(c, CodeTokenExpired)
			}
			return unauthenticated(c, CodeInvalidToken)
		}
		c.Locals(LocalPrincipal, claims.Principal())
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msgUnauthenticated})
}

// GetPrincipal devuelve el principal del contexto (después del middleware de auth), o nil.
func GetPrincipal(c *fiber.Ctx) *authz.Principal {
	p, _ := c.Locals(LocalPrincipal).(*authz.Principal)
	return p
}

// GetUserID devuelve el UserID del contexto.
func GetUserID(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.UserID
	}
	return ""
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) authz.Role {
	if p := GetPrincipal(c); p != nil {
		return p.Role
	}
	return ""
}
