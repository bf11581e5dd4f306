// Package client es el cliente Go de la API con una sesión de vida explícita.
//
// La sesión guarda el token y la tabla de permisos del rol para que las pantallas
// decidan localmente qué mostrar. Esa decisión es solo de presentación: el servidor
// vuelve a verificar cada petición.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/ui"
)

// Códigos con los que la API indica que el token ya no sirve.
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeInvalidToken = "INVALID_TOKEN"
)

// ErrNoSession la sesión no tiene token (nunca inició o fue cerrada).
var ErrNoSession = errors.New("client: sin sesión activa")

// APIError respuesta de error de la API.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

// SessionInvalid informa si el error obliga a descartar la sesión.
func (e *APIError) SessionInvalid() bool {
	return e.Code == CodeTokenExpired || e.Code == CodeInvalidToken
}

// User datos del usuario autenticado.
type User struct {
	ID        string     `json:"id"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      authz.Role `json:"role"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type sessionResponse struct {
	Permissions []authz.Permission  `json:"permissions"`
	Navigation  []ui.NavigationItem `json:"navigation"`
}

// Client conoce la URL base y el transporte. No guarda estado de sesión.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// New construye el cliente. hc nil usa un *http.Client con timeout de 15s.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, now: time.Now}
}

// NewSession crea una sesión vacía ligada al cliente.
func (c *Client) NewSession() *Session {
	return &Session{c: c}
}

// send ejecuta la petición y decodifica out. Las respuestas >= 400 se devuelven como *APIError.
func (c *Client) send(ctx context.Context, method, path, token string, body, out interface{}) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: codificar cuerpo: %w", err)
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("client: construir petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw, err = io.ReadAll(resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decodificar respuesta: %w", err)
	}
	return nil
}

// Session ciclo de vida explícito: Login inicia, Logout termina. Segura para uso concurrente.
type Session struct {
	c *Client

	mu          sync.RWMutex
	token       string
	expiresAt   time.Time
	user        User
	permissions []authz.Permission
	navigation  []ui.NavigationItem
}

// Login autentica y carga la tabla de permisos del rol. La sesión solo queda activa
// si ambas llamadas responden.
func (s *Session) Login(ctx context.Context, email, password string) error {
	var res tokenResponse
	in := map[string]string{"email": email, "password": password}
	if err := s.c.send(ctx, http.MethodPost, "/api/auth/login", "", in, &res); err != nil {
		return err
	}
	return s.commit(ctx, res)
}

// Refresh emite un token nuevo con el rol vigente en el servidor. Si falla, la sesión
// anterior se conserva salvo que la API invalide el token.
func (s *Session) Refresh(ctx context.Context) error {
	var res tokenResponse
	if err := s.Do(ctx, http.MethodPost, "/api/auth/refresh", nil, &res); err != nil {
		return err
	}
	return s.commit(ctx, res)
}

// Logout descarta el token y los permisos.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.user = User{}
	s.permissions = nil
	s.navigation = nil
}

// Principal identidad de la sesión, o nil si no hay sesión o el token venció localmente.
func (s *Session) Principal() *authz.Principal {
	if !s.active() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &authz.Principal{UserID: s.user.ID, Email: s.user.Email, Role: s.user.Role}
}

// User datos del usuario de la sesión.
func (s *Session) User() (User, bool) {
	if !s.active() {
		return User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, true
}

// Can evalúa el permiso localmente, sin ida y vuelta al servidor.
func (s *Session) Can(action, resource string) bool {
	return s.Principal().Can(action, resource)
}

// Permissions copia de la tabla de permisos recibida del servidor.
func (s *Session) Permissions() []authz.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]authz.Permission, len(s.permissions))
	copy(out, s.permissions)
	return out
}

// Navigation menú filtrado para el rol de la sesión.
func (s *Session) Navigation() []ui.NavigationItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ui.NavigationItem, len(s.navigation))
	copy(out, s.navigation)
	return out
}

// Do ejecuta una petición autenticada. La sesión se descarta solo si la API responde
// TOKEN_EXPIRED o INVALID_TOKEN; un fallo de red la deja intacta. out puede ser
// *[]byte para respuestas binarias.
func (s *Session) Do(ctx context.Context, method, path string, body, out interface{}) error {
	if !s.active() {
		return ErrNoSession
	}
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	err := s.c.send(ctx, method, path, token, body, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.SessionInvalid() {
		s.Logout()
	}
	return err
}

// commit consulta la sesión con el token nuevo y solo entonces reemplaza el estado.
func (s *Session) commit(ctx context.Context, res tokenResponse) error {
	var sess sessionResponse
	if err := s.c.send(ctx, http.MethodGet, "/api/auth/session", res.Token, nil, &sess); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = res.Token
	s.expiresAt = res.ExpiresAt
	s.user = res.User
	s.permissions = sess.Permissions
	s.navigation = sess.Navigation
	return nil
}

// active informa si hay token vigente; un token vencido localmente cierra la sesión.
func (s *Session) active() bool {
	s.mu.RLock()
	token, exp := s.token, s.expiresAt
	s.mu.RUnlock()
	if token == "" {
		return false
	}
	if !exp.IsZero() && !s.c.now().Before(exp) {
		s.Logout()
		return false
	}
	return true
}
