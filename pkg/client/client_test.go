package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// API falsa
// ──────────────────────────────────────────────────────────────────────────────

type fakeAPI struct {
	mu       sync.Mutex
	role     authz.Role
	expires  time.Time
	errCode  string // si no es vacío, /api/things responde con este código
	status   int
	lastAuth string
	// si es verdadero, /api/auth/session responde 503
	sessionDown bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	token := func() map[string]interface{} {
		f.mu.Lock()
		defer f.mu.Unlock()
		return map[string]interface{}{
			"token":      "tok-" + string(f.role),
			"expires_at": f.expires,
			"user":       map[string]interface{}{"id": "u-1", "email": "ana@eco.co", "role": f.role},
		}
	}
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "Secreta_99" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "INVALID_CREDENTIALS", "message": "credenciales inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, token())
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, token())
	})
	mux.HandleFunc("/api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		role, down := f.role, f.sessionDown
		f.mu.Unlock()
		if down {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"code": "INTERNAL", "message": "no disponible"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"role":        role,
			"permissions": authz.PermissionsFor(role),
			"navigation":  []map[string]string{{"name": "Dashboard", "href": "/dashboard"}},
		})
	})
	mux.HandleFunc("/api/things", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		code, status := f.errCode, f.status
		f.mu.Unlock()
		if code != "" {
			writeJSON(w, status, map[string]string{"code": code, "message": "no"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"ok": "si"})
	})
	return mux
}

func (f *fakeAPI) fail(code string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errCode, f.status = code, status
}

func (f *fakeAPI) setRole(r authz.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.role = r
}

func (f *fakeAPI) setSessionDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionDown = down
}

func (f *fakeAPI) authHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func setup(t *testing.T, role authz.Role) (*Session, *fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{role: role, expires: time.Now().Add(time.Hour)}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client()).NewSession(), api, srv
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CargaPrincipalYPermisos(t *testing.T) {
	s, _, _ := setup(t, authz.RoleCollector)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))

	p := s.Principal()
	require.NotNil(t, p)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, authz.RoleCollector, p.Role)
	assert.True(t, s.Can(authz.ActionWrite, authz.ResourcePoints))
	assert.False(t, s.Can(authz.ActionRead, authz.ResourceDashboard))
	assert.Equal(t, authz.PermissionsFor(authz.RoleCollector), s.Permissions())
	require.Len(t, s.Navigation(), 1)
	assert.Equal(t, "/dashboard", s.Navigation()[0].Href)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s, _, _ := setup(t, authz.RoleRequester)
	err := s.Login(context.Background(), "ana@eco.co", "mala")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.Nil(t, s.Principal())
}

func TestSinSesion(t *testing.T) {
	s, _, _ := setup(t, authz.RoleAdmin)
	assert.Nil(t, s.Principal())
	assert.False(t, s.Can(authz.ActionRead, authz.ResourceUsers))
	assert.ErrorIs(t, s.Do(context.Background(), http.MethodGet, "/api/things", nil, nil), ErrNoSession)
}

func TestLogout(t *testing.T) {
	s, _, _ := setup(t, authz.RoleAdmin)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))
	s.Logout()

	assert.Nil(t, s.Principal())
	assert.Empty(t, s.Permissions())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestDo_AdjuntaBearer(t *testing.T) {
	s, api, _ := setup(t, authz.RoleRequester)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))

	var out map[string]string
	require.NoError(t, s.Do(context.Background(), http.MethodGet, "/api/things", nil, &out))
	assert.Equal(t, "si", out["ok"])
	assert.Equal(t, "Bearer tok-usuario", api.authHeader())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuándo se descarta la sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_TokenExpiradoOInvalidoCierraLaSesion(t *testing.T) {
	for _, code := range []string{CodeTokenExpired, CodeInvalidToken} {
		t.Run(code, func(t *testing.T) {
			s, api, _ := setup(t, authz.RoleRequester)
			require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))

			api.fail(code, http.StatusUnauthorized)
			err := s.Do(context.Background(), http.MethodGet, "/api/things", nil, nil)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.True(t, apiErr.SessionInvalid())
			assert.Nil(t, s.Principal())
		})
	}
}

func TestDo_ForbiddenNoCierraLaSesion(t *testing.T) {
	s, api, _ := setup(t, authz.RoleRequester)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))

	api.fail("FORBIDDEN", http.StatusForbidden)
	err := s.Do(context.Background(), http.MethodGet, "/api/things", nil, nil)
	require.Error(t, err)
	assert.NotNil(t, s.Principal())
}

func TestDo_FalloDeRedNoCierraLaSesion(t *testing.T) {
	s, _, srv := setup(t, authz.RoleRequester)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))

	srv.Close()
	err := s.Do(context.Background(), http.MethodGet, "/api/things", nil, nil)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.NotNil(t, s.Principal())
}

func TestPrincipal_VencimientoLocal(t *testing.T) {
	s, _, _ := setup(t, authz.RoleRequester)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))

	s.c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Nil(t, s.Principal())
	assert.ErrorIs(t, s.Do(context.Background(), http.MethodGet, "/api/things", nil, nil), ErrNoSession)
}

func TestRefresh_ActualizaElRol(t *testing.T) {
	s, api, _ := setup(t, authz.RoleRequester)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))
	assert.False(t, s.Can(authz.ActionRead, authz.ResourceCollectionRoutes))

	api.setRole(authz.RoleCollector)
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, authz.RoleCollector, s.Principal().Role)
	assert.True(t, s.Can(authz.ActionRead, authz.ResourceCollectionRoutes))
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallo al cargar la sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_SinSesionSiFallaLaCargaDePermisos(t *testing.T) {
	s, api, _ := setup(t, authz.RoleRequester)
	api.setSessionDown(true)

	err := s.Login(context.Background(), "ana@eco.co", "Secreta_99")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)

	assert.Nil(t, s.Principal())
	assert.Empty(t, s.Permissions())
	assert.ErrorIs(t, s.Do(context.Background(), http.MethodGet, "/api/things", nil, nil), ErrNoSession)
}

func TestRefresh_ConservaLaSesionSiFallaLaCargaDePermisos(t *testing.T) {
	s, api, _ := setup(t, authz.RoleRequester)
	require.NoError(t, s.Login(context.Background(), "ana@eco.co", "Secreta_99"))

	api.setRole(authz.RoleCollector)
	api.setSessionDown(true)
	require.Error(t, s.Refresh(context.Background()))

	p := s.Principal()
	require.NotNil(t, p)
	assert.Equal(t, authz.RoleRequester, p.Role)
	assert.Equal(t, authz.PermissionsFor(authz.RoleRequester), s.Permissions())

	require.NoError(t, s.Do(context.Background(), http.MethodGet, "/api/things", nil, nil))
	assert.Equal(t, "Bearer tok-usuario", api.authHeader())
}
