package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// SerialGenerator arma el número de serie {PREFIJO}-{NNNNNN} a partir del consecutivo por tipo.
type SerialGenerator struct {
	prefixes map[entity.DocumentKind]string
}

// NewSerialGenerator construye el generador con los prefijos configurados.
func NewSerialGenerator(quotePrefix, billingPrefix string) *SerialGenerator {
	return &SerialGenerator{prefixes: map[entity.DocumentKind]string{
		entity.KindQuote:   quotePrefix,
		entity.KindBilling: billingPrefix,
	}}
}

// Next reserva el siguiente consecutivo. seq debe estar atado a la transacción del documento
// para que un rollback libere el número.
func (g *SerialGenerator) Next(ctx context.Context, seq repository.SequenceRepository, kind entity.DocumentKind) (string, error) {
	prefix, ok := g.prefixes[kind]
	if !ok || prefix == "" {
		return "", fmt.Errorf("%w: sin prefijo para %s", domain.ErrValidation, kind)
	}
	n, err := seq.Next(ctx, kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, n), nil
}
