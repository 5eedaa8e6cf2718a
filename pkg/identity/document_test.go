package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNITCheckDigit(t *testing.T) {
	d, err := NITCheckDigit("800197268")
	require.NoError(t, err)
	assert.Equal(t, byte('4'), d)

	d, err = NITCheckDigit("900.123.456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), d)

	_, err = NITCheckDigit("1234")
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		docType string
		number  string
		ok      bool
	}{
		{"sin tipo", "", "ABC-1", true},
		{"cc", "CC", "1020304050", true},
		{"cc con letras", "CC", "10A", false},
		{"ce minúscula", "ce", "445566", true},
		{"pasaporte", "PP", "AB123456", true},
		{"pasaporte con guion", "PP", "AB-12", false},
		{"nit con formato", "NIT", "800.197.268-4", true},
		{"nit sin separadores", "NIT", "9001234568", true},
		{"nit dígito errado", "NIT", "800197268-5", false},
		{"nit sin dígito", "NIT", "800197268", false},
		{"tipo desconocido", "RUT", "123", false},
		{"número vacío", "CC", "  ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.docType, tc.number)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidDocument)
			}
		})
	}
}
