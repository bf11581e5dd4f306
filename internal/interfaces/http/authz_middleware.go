package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/logger"
)

const (
	CodeForbidden = "FORBIDDEN"
	msgForbidden  = "no tienes permiso para realizar esta acción"
)

// Authorizer construye los middlewares de autorización. Deben usarse DESPUÉS de
// AuthMiddleware (necesitan el principal en c.Locals).
//
// Comportamiento:
//   - 401 MISSING_TOKEN → no hay principal en el contexto.
//   - 403 FORBIDDEN     → el rol no tiene el permiso; el mensaje nunca nombra el permiso.
//
// Cada denegación se registra en warn con rol y ruta.
type Authorizer struct {
	eval authz.Evaluator
	log  *logger.Logger
}

// NewAuthorizer construye el autorizador. eval nil usa authz.Default; log nil no registra.
func NewAuthorizer(eval authz.Evaluator, log *logger.Logger) *Authorizer {
	if eval == nil {
		eval = authz.Default
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Authorizer{eval: eval, log: log.Component("authz")}
}

// RequirePermission exige (acción, recurso).
func (a *Authorizer) RequirePermission(action, resource string) fiber.Handler {
	perm := authz.P(action, resource)
	return a.require(perm.String(), func(r authz.Role) bool { return a.eval.Can(r, action, resource) })
}

// RequireAnyPermission exige al menos uno de los permisos.
func (a *Authorizer) RequireAnyPermission(perms ...authz.Permission) fiber.Handler {
	return a.require("any", func(r authz.Role) bool { return a.eval.CanAny(r, perms...) })
}

// RequireAllPermissions exige todos los permisos.
func (a *Authorizer) RequireAllPermissions(perms ...authz.Permission) fiber.Handler {
	return a.require("all", func(r authz.Role) bool { return a.eval.CanAll(r, perms...) })
}

// RequireRole exige uno de los roles (el administrador siempre pasa).
func (a *Authorizer) RequireRole(roles ...authz.Role) fiber.Handler {
	return a.require("role", func(r authz.Role) bool { return a.eval.HasRole(r, roles...) })
}

func (a *Authorizer) require(rule string, allowed func(authz.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return unauthenticated(c, CodeMissingToken)
		}
		if !allowed(p.Role) {
			a.log.Warn().
				Str("user_id", p.UserID).
				Str("role", p.Role.String()).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("rule", rule).
				Msg("acceso denegado")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: msgForbidden})
		}
		return c.Next()
	}
}
