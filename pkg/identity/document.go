// Package identity valida documentos de identidad de clientes (Colombia).
package identity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Tipos de documento aceptados.
const (
	TypeCC  = "CC"  // cédula de ciudadanía
	TypeCE  = "CE"  // cédula de extranjería
	TypeNIT = "NIT" // persona jurídica, con dígito de verificación
	TypePP  = "PP"  // pasaporte
)

// ErrInvalidDocument documento con tipo o número inválido.
var ErrInvalidDocument = errors.New("documento de identidad inválido")

// pesos del módulo 11 aplicados a los 9 dígitos base del NIT, de izquierda a derecha.
var nitWeights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Validate comprueba el número según el tipo. Tipo vacío solo exige número no vacío.
// NIT acepta "800197268-4", "800.197.268-4" o "8001972684".
func Validate(docType, number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return fmt.Errorf("%w: número vacío", ErrInvalidDocument)
	}
	switch strings.ToUpper(docType) {
	case "":
		return nil
	case TypeCC, TypeCE:
		if !onlyDigits(number) {
			return fmt.Errorf("%w: %s solo admite dígitos", ErrInvalidDocument, docType)
		}
		return nil
	case TypePP:
		for _, r := range number {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return fmt.Errorf("%w: pasaporte solo admite letras y dígitos", ErrInvalidDocument)
			}
		}
		return nil
	case TypeNIT:
		return validateNIT(number)
	default:
		return fmt.Errorf("%w: tipo %q no soportado (CC, CE, NIT, PP)", ErrInvalidDocument, docType)
	}
}

// NITCheckDigit dígito de verificación para los 9 dígitos base.
func NITCheckDigit(base string) (byte, error) {
	digits := extractDigits(base)
	if len(digits) != 9 {
		return 0, fmt.Errorf("%w: el NIT base tiene %d dígitos, se esperaban 9", ErrInvalidDocument, len(digits))
	}
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * nitWeights[i]
	}
	r := sum % 11
	if r > 1 {
		r = 11 - r
	}
	return byte('0' + r), nil
}

func validateNIT(number string) error {
	digits := extractDigits(number)
	if len(digits) != 10 {
		return fmt.Errorf("%w: NIT debe tener 9 dígitos más el de verificación", ErrInvalidDocument)
	}
	expected, err := NITCheckDigit(string(digits[:9]))
	if err != nil {
		return err
	}
	if digits[9] != expected {
		return fmt.Errorf("%w: dígito de verificación %c, se esperaba %c", ErrInvalidDocument, digits[9], expected)
	}
	return nil
}

func onlyDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
