package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

func viewer(role authz.Role) *authz.Principal {
	return &authz.Principal{UserID: "u-1", Email: "u@eco.co", Role: role}
}

// ─── Decide ───────────────────────────────────────────────────────────────────

func TestDecide_SinViewerNiega(t *testing.T) {
	assert.Equal(t, Deny, Guard{}.Decide(nil))
	assert.Equal(t, Deny, AdminGuard().Decide(nil))
	assert.Equal(t, Deny, PermissionGuard(authz.ActionRead, authz.ResourceReports).Decide(nil))
}

func TestDecide_AdminSiemprePermite(t *testing.T) {
	admin := viewer(authz.RoleAdmin)
	assert.Equal(t, Allow, RoleGuard(authz.RoleCollector).Decide(admin))
	assert.Equal(t, Allow, PermissionGuard("inventada", "recurso-inexistente").Decide(admin))
	assert.Equal(t, Allow, Guard{AnyOf: []authz.Permission{}}.Decide(admin))
}

func TestDecide_RolFueraDeLista(t *testing.T) {
	assert.Equal(t, Deny, RoleGuard(authz.RoleCollector).Decide(viewer(authz.RoleRequester)))
	assert.Equal(t, Allow, RoleGuard(authz.RoleCollector).Decide(viewer(authz.RoleCollector)))
}

func TestDecide_Permiso(t *testing.T) {
	g := PermissionGuard(authz.ActionWrite, authz.ResourceCollectionRequests)
	assert.Equal(t, Allow, g.Decide(viewer(authz.RoleRequester)))
	assert.Equal(t, Deny, g.Decide(viewer(authz.RoleCollector)))
}

func TestDecide_RolYPermisoDebenCumplirseAmbos(t *testing.T) {
	p := authz.P(authz.ActionRead, authz.ResourceUsers)
	g := Guard{Roles: []authz.Role{authz.RoleRequester, authz.RoleCollector}, Permission: &p}
	assert.Equal(t, Allow, g.Decide(viewer(authz.RoleCollector)))
	assert.Equal(t, Deny, g.Decide(viewer(authz.RoleRequester)), "rol permitido pero sin el permiso")
}

func TestDecide_AnyOf(t *testing.T) {
	g := Guard{AnyOf: []authz.Permission{
		authz.P(authz.ActionWrite, authz.ResourceCollectionRoutes),
		authz.P(authz.ActionWrite, authz.ResourcePoints),
	}}
	assert.Equal(t, Allow, g.Decide(viewer(authz.RoleCollector)))
	assert.Equal(t, Deny, g.Decide(viewer(authz.RoleRequester)))
}

func TestDecide_RolDesconocidoNiega(t *testing.T) {
	assert.Equal(t, Deny, Guard{}.Decide(viewer(authz.Role("superuser"))))
}

type denyAll struct{ authz.StaticEvaluator }

func (denyAll) Can(authz.Role, string, string) bool { return false }

func TestDecide_UsaElEvaluadorInyectado(t *testing.T) {
	g := PermissionGuard(authz.ActionRead, authz.ResourceReports)
	g.Evaluator = denyAll{}
	assert.Equal(t, Deny, g.Decide(viewer(authz.RoleRequester)))
}

// ─── Render ───────────────────────────────────────────────────────────────────

func TestRender_SoloInvocaLaRamaElegida(t *testing.T) {
	contentCalls, fallbackCalls := 0, 0
	content := func() View { contentCalls++; return View{Name: "reportes"} }
	fallback := func() View { fallbackCalls++; return View{Name: "login"} }
	g := PermissionGuard(authz.ActionRead, authz.ResourceReports)

	v := Render(viewer(authz.RoleCollector), g, content, fallback)
	assert.Equal(t, "login", v.Name)
	assert.Equal(t, 0, contentCalls, "el contenido protegido no debe construirse")
	assert.Equal(t, 1, fallbackCalls)

	v = Render(viewer(authz.RoleRequester), g, content, fallback)
	assert.Equal(t, "reportes", v.Name)
	assert.Equal(t, 1, contentCalls)
	assert.Equal(t, 1, fallbackCalls)
}

func TestRender_FallbackNilDevuelveAccessDenied(t *testing.T) {
	called := false
	v := Render(viewer(authz.RoleRequester), AdminGuard(), func() View { called = true; return View{} }, nil)
	assert.False(t, called)
	assert.Equal(t, AccessDenied, v)
}

// Sin sesión la decisión es local: no hay red que consultar ni contenido que producir.
func TestRender_SinSesionNoProduceContenido(t *testing.T) {
	called := false
	v := Render(nil, Guard{}, func() View { called = true; return View{Name: "dashboard"} }, nil)
	assert.False(t, called)
	assert.Equal(t, "access-denied", v.Name)
}

// ─── Navigation ───────────────────────────────────────────────────────────────

func names(items []NavigationItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestNavigation_Solicitante(t *testing.T) {
	assert.Equal(t, []string{
		"Dashboard", "Reportes", "Solicitar Recolección", "Códigos de Descuento",
	}, names(Navigation(viewer(authz.RoleRequester))))
}

func TestNavigation_Recolector(t *testing.T) {
	assert.Equal(t, []string{
		"Dashboard", "Rutas de Recolección", "Registrar Recolección", "Recolecciones",
	}, names(Navigation(viewer(authz.RoleCollector))))
}

func TestNavigation_AdminVeTodo(t *testing.T) {
	items := Navigation(viewer(authz.RoleAdmin))
	require.Len(t, items, len(menu))
	assert.Equal(t, "Tipos de Residuos", items[len(items)-1].Name)
	assert.Equal(t, "/dashboard/tipos-residuos", items[len(items)-1].Href)
}

func TestNavigation_SinViewer(t *testing.T) {
	assert.Nil(t, Navigation(nil))
}
