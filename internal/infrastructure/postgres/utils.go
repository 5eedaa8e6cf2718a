package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/retail-backoffice/internal/domain"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx para que los repos funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// validID indica si s puede compararse contra una columna UUID. Un id con otro
// formato no existe: los repos responden "no encontrado" sin consultar.
func validID(s string) bool {
	return uuid.Validate(s) == nil
}

// isInvalidText verifica si un error es 22P02 (invalid_text_representation).
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// wrapRead traduce 22P02 a ErrNotFound; el resto se envuelve con la operación.
func wrapRead(op string, err error) error {
	if isInvalidText(err) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// wrapWrite traduce 23505 a ErrDuplicate y 22P02 a ErrNotFound; el resto se envuelve con la operación.
func wrapWrite(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, op)
	}
	if isInvalidText(err) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// deref devuelve "" para punteros nulos leídos de columnas opcionales.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
