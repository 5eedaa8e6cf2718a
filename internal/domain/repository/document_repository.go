package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// DocumentFilter filtros para listar documentos.
type DocumentFilter struct {
	Kind   entity.DocumentKind
	ShopID string
	Status string
	Limit  int
	Offset int
}

// DocumentRepository persiste cabeceras de cotizaciones y facturas.
// Los Get* devuelven (nil, nil) si no existe y no cargan Items.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	// Update reescribe cliente, descuento, envío, totales y notas.
	Update(ctx context.Context, doc *entity.Document) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error)
	GetBySerial(ctx context.Context, kind entity.DocumentKind, serial string) (*entity.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	// Delete elimina la cabecera (las líneas caen en cascada) y devuelve las filas afectadas.
	Delete(ctx context.Context, kind entity.DocumentKind, id string) (int64, error)
}

// LineItemRepository persiste las líneas de los documentos.
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
	ListByDocument(ctx context.Context, documentID string) ([]entity.LineItem, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}

// SequenceRepository entrega consecutivos por tipo de documento.
// Next incrementa bajo bloqueo de fila: dentro de una transacción, un rollback
// libera el valor.
type SequenceRepository interface {
	Next(ctx context.Context, kind entity.DocumentKind) (int64, error)
}
