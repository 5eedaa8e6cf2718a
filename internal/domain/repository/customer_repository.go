package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// CustomerRepository persiste clientes junto con su persona y dirección.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPersonID(ctx context.Context, personID string) (*entity.Customer, error)
	List(ctx context.Context, shopID, search string, limit, offset int) ([]*entity.Customer, error)
}
