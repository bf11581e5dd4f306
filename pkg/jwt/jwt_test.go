package jwt_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	pkgjwt "github.com/jhoicas/ecorecoleccion-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "ecorecoleccion-test"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testExpMin = 60
)

var testPrincipal = authz.Principal{UserID: testUserID, Email: "ana@example.com", Role: authz.RoleRequester}

// clock reloj manipulable para probar la ventana de validez.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newManager(t *testing.T, c *clock) *pkgjwt.Manager {
	t.Helper()
	m, err := pkgjwt.NewManager(testSecret, testIssuer, testExpMin)
	require.NoError(t, err)
	return m.WithClock(c.now)
}

func TestNewManager_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewManager("", testIssuer, testExpMin)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestNewManager_TTLPorDefecto(t *testing.T) {
	m, err := pkgjwt.NewManager(testSecret, testIssuer, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, m.TTL())
}

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newManager(t, c)

	tok, exp, err := m.Generate(testPrincipal)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.Equal(t, c.t.Add(time.Hour), exp)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, authz.RoleRequester, claims.Role)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.True(t, c.t.Equal(claims.IssuedAt.Time), "iat debe coincidir con el reloj")
	assert.Equal(t, testPrincipal, *claims.Principal())
}

// Un token emitido en T con vida L es válido para T ≤ T' < T+L y expirado para T' ≥ T+L.
func TestParse_VentanaDeValidez(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &clock{t: issued}
	m := newManager(t, c)
	tok, _, err := m.Generate(testPrincipal)
	require.NoError(t, err)

	lifetime := time.Duration(testExpMin) * time.Minute
	for _, offset := range []time.Duration{0, time.Second, 30 * time.Minute, lifetime - time.Second} {
		c.t = issued.Add(offset)
		_, err := m.Parse(tok)
		assert.NoError(t, err, "offset %s debe ser válido", offset)
	}
	for _, offset := range []time.Duration{lifetime, lifetime + time.Second, 24 * time.Hour} {
		c.t = issued.Add(offset)
		_, err := m.Parse(tok)
		assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired, "offset %s debe estar expirado", offset)
	}
}

// Emitido con fracción de segundo: la ventana y la expiración devuelta coinciden con los claims.
func TestParse_VentanaDeValidezConFraccionDeSegundo(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 900_000_000, time.UTC)
	c := &clock{t: issued}
	m := newManager(t, c)
	tok, exp, err := m.Generate(testPrincipal)
	require.NoError(t, err)

	lifetime := time.Duration(testExpMin) * time.Minute
	base := issued.Truncate(time.Second)
	assert.Equal(t, base.Add(lifetime), exp)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))

	for _, offset := range []time.Duration{0, lifetime - 100*time.Millisecond, lifetime - time.Nanosecond} {
		c.t = base.Add(offset)
		_, err := m.Parse(tok)
		assert.NoError(t, err, "offset %s debe ser válido", offset)
	}
	c.t = exp
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
}

// Alterar cualquier byte de la firma siempre produce TokenInvalid.
func TestParse_FirmaAlterada(t *testing.T) {
	c := &clock{t: time.Now().Truncate(time.Second)}
	m := newManager(t, c)
	tok, _, err := m.Generate(testPrincipal)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	for i := range sig {
		tampered := make([]byte, len(sig))
		copy(tampered, sig)
		tampered[i] ^= 0x01
		bad := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(tampered)

		claims, err := m.Parse(bad)
		require.ErrorIs(t, err, pkgjwt.ErrTokenInvalid, "byte %d", i)
		require.Nil(t, claims)
	}
}

func TestParse_SecretIncorrecto(t *testing.T) {
	c := &clock{t: time.Now()}
	tok, _, err := newManager(t, c).Generate(testPrincipal)
	require.NoError(t, err)

	other, err := pkgjwt.NewManager("otro-secret-completamente-distinto", testIssuer, testExpMin)
	require.NoError(t, err)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_Malformado(t *testing.T) {
	m := newManager(t, &clock{t: time.Now()})
	for _, s := range []string{"", "abc", "token.invalido.aqui", "a.b.c.d"} {
		_, err := m.Parse(s)
		assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid, s)
	}
}

func TestParse_AlgoritmoNone(t *testing.T) {
	m := newManager(t, &clock{t: time.Now()})
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testUserID,
		Role:   authz.RoleAdmin,
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_RolDesconocido(t *testing.T) {
	m := newManager(t, &clock{t: time.Now()})
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testUserID,
		Role:   "superuser",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_EmisorDistinto(t *testing.T) {
	c := &clock{t: time.Now()}
	other, err := pkgjwt.NewManager(testSecret, "otro-emisor", testExpMin)
	require.NoError(t, err)
	tok, _, err := other.WithClock(c.now).Generate(testPrincipal)
	require.NoError(t, err)

	_, err = newManager(t, c).Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestGenerate_RolInvalido(t *testing.T) {
	m := newManager(t, &clock{t: time.Now()})
	_, _, err := m.Generate(authz.Principal{UserID: testUserID, Role: "root"})
	assert.Error(t, err)
}
