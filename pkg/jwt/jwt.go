package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// Errores de verificación. El middleware los distingue para que el cliente
// sepa si debe limpiar la sesión (expirado/inválido) o solo reintentar.
var (
	ErrTokenExpired = errors.New("jwt: token expirado")
	ErrTokenInvalid = errors.New("jwt: token inválido")
	ErrEmptySecret  = errors.New("jwt: secret vacío")
)

// Claims incluye los claims estándar JWT más la identidad del principal.
// Role es una foto del rol al momento de emitir el token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Role   authz.Role `json:"role"`
}

// Principal convierte los claims en la identidad que usa el resto de la app.
func (c *Claims) Principal() *authz.Principal {
	return &authz.Principal{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// Manager emite y verifica tokens HS256. Se construye una vez al arrancar y se
// pasa explícitamente a quien lo necesite.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager construye el manager. expMinutes <= 0 usa 60 minutos.
func NewManager(secret, issuer string, expMinutes int) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if expMinutes <= 0 {
		expMinutes = 60
	}
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(expMinutes) * time.Minute,
		now:    time.Now,
	}, nil
}

// WithClock devuelve una copia del manager con otro reloj (tests).
func (m *Manager) WithClock(now func() time.Time) *Manager {
	cp := *m
	cp.now = now
	return &cp
}

// TTL duración de los tokens emitidos.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Generate firma un token para el principal. Devuelve también la fecha de expiración.
func (m *Manager) Generate(p authz.Principal) (string, time.Time, error) {
	if !p.Role.Valid() {
		return "", time.Time{}, fmt.Errorf("jwt: rol inválido %q", p.Role)
	}
	// Los claims iat/exp se firman en segundos enteros.
	now := m.now().Truncate(jwt.TimePrecision)
	exp := now.Add(m.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma, algoritmo, emisor y expiración.
// Retorna ErrTokenExpired o ErrTokenInvalid; nunca claims si hay error.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: claims incompletos", ErrTokenInvalid)
	}
	return claims, nil
}
