package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	token, err := Generate("secreto", "u-1", "ana@tienda.co", "admin", "retail-backoffice", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@tienda.co", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "retail-backoffice", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", "u-1", "", "vendedor", "", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate("secreto", "u-1", "", "vendedor", "", -1)
	require.NoError(t, err)

	_, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := Generate("", "u-1", "", "", "", 5)
	assert.Error(t, err)
}
