package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
)

type sample struct {
	UserName string `json:"user_name" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	Name     string `json:"nombre" validate:"required,min=2,max=50"`
}

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Abcdef1!":   true,
		"Abcdefg1":   false, // sin símbolo
		"abcdef1!":   false, // sin mayúscula
		"ABCDEF1!":   false, // sin minúscula
		"Abcdefg!":   false, // sin dígito
		"Ab1!":       false, // corta
		"Secreta_99": true,
	}
	for pw, want := range cases {
		assert.Equal(t, want, StrongPassword(pw), pw)
	}
}

func TestValidUserName(t *testing.T) {
	assert.True(t, ValidUserName("ana_01"))
	assert.False(t, ValidUserName("ab"))
	assert.False(t, ValidUserName("con espacio"))
	assert.False(t, ValidUserName("abcdefghijklmnopqrstu"))
}

func TestStruct_OK(t *testing.T) {
	err := Struct(sample{UserName: "ana_01", Email: "ana@eco.co", Password: "Abcdef1!", Name: "Ana"})
	assert.NoError(t, err)
}

func TestStruct_CamposEnJSONyErrorDeDominio(t *testing.T) {
	err := Struct(sample{UserName: "a", Email: "no-es-correo", Password: "debil", Name: "A"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "user_name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "nombre")
	assert.NotEmpty(t, verr.Error())
}

type bounds struct {
	Lat      float64 `json:"lat" validate:"gte=-90,lte=90"`
	Weight   float64 `json:"weight" validate:"gt=0"`
	Discount float64 `json:"discount" validate:"lt=1"`
	Order    int     `json:"order" validate:"gte=0"`
}

func TestStruct_MensajesDeLimites(t *testing.T) {
	err := Struct(bounds{Lat: 95, Weight: 0, Discount: 1, Order: -1})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	assert.Equal(t, "lat debe ser menor o igual a 90", verr.Fields["lat"])
	assert.Equal(t, "weight debe ser mayor que 0", verr.Fields["weight"])
	assert.Equal(t, "discount debe ser menor que 1", verr.Fields["discount"])
	assert.Equal(t, "order debe ser mayor o igual a 0", verr.Fields["order"])

	err = Struct(bounds{Lat: -91, Weight: 1})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "lat debe ser mayor o igual a -90", verr.Fields["lat"])
}
