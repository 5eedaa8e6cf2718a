package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/pkg/identity"
	"github.com/rs/zerolog"
)

// CustomerUseCase casos de uso para clientes. Resolve se usa dentro de la
// transacción de los documentos; el resto abre la suya.
type CustomerUseCase struct {
	txRunner TxRunner
	reads    Repos
	log      zerolog.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(txRunner TxRunner, reads Repos, log zerolog.Logger) *CustomerUseCase {
	return &CustomerUseCase{txRunner: txRunner, reads: reads, log: log}
}

// Resolve decide qué cliente lleva un documento:
//   - payload sin person_id: crea persona, dirección y cliente nuevos;
//   - payload con person_id: actualiza el cliente de esa persona (ErrNotFound si no existe);
//   - sin payload: usa customerID tal cual ("" = anónimo, desconocido = ErrNotFound).
func (uc *CustomerUseCase) Resolve(
	ctx context.Context,
	repo repository.CustomerRepository,
	shopID, customerID string,
	payload *dto.CustomerPayload,
	now time.Time,
) (string, error) {
	if payload != nil {
		if payload.PersonID == "" {
			c, err := uc.create(ctx, repo, shopID, *payload, now)
			if err != nil {
				return "", err
			}
			return c.ID, nil
		}
		existing, err := repo.GetByPersonID(ctx, payload.PersonID)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", fmt.Errorf("%w: persona %s", domain.ErrNotFound, payload.PersonID)
		}
		if err := uc.update(ctx, repo, existing, *payload, now); err != nil {
			return "", err
		}
		return existing.ID, nil
	}
	if customerID == "" {
		return "", nil
	}
	c, err := repo.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customerID)
	}
	return c.ID, nil
}

// Create crea un cliente en la tienda indicada por slug.
func (uc *CustomerUseCase) Create(ctx context.Context, shopSlug string, in dto.CustomerPayload) (*dto.CustomerResponse, error) {
	if shopSlug == "" {
		return nil, fmt.Errorf("%w: shop es obligatorio", domain.ErrValidation)
	}
	var created *entity.Customer
	err := uc.txRunner.RunBilling(ctx, func(r Repos) error {
		shop, err := r.Shops.GetBySlug(ctx, shopSlug)
		if err != nil {
			return err
		}
		if shop == nil {
			return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, shopSlug)
		}
		created, err = uc.create(ctx, r.Customers, shop.ID, in, time.Now())
		return err
	})
	if err != nil {
		uc.logStorage(err, "crear cliente")
		return nil, err
	}
	out := ToCustomerResponse(created)
	return &out, nil
}

// Update reescribe persona y dirección de un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerPayload) (*dto.CustomerResponse, error) {
	var updated *entity.Customer
	err := uc.txRunner.RunBilling(ctx, func(r Repos) error {
		c, err := r.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
		}
		if err := uc.update(ctx, r.Customers, c, in, time.Now()); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		uc.logStorage(err, "actualizar cliente")
		return nil, err
	}
	out := ToCustomerResponse(updated)
	return &out, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.reads.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// List lista clientes de la tienda con búsqueda opcional por nombre o documento.
func (uc *CustomerUseCase) List(ctx context.Context, shopSlug, search string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	shopID := ""
	if shopSlug != "" {
		shop, err := uc.reads.Shops.GetBySlug(ctx, shopSlug)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, domain.ErrNotFound
		}
		shopID = shop.ID
	}
	list, err := uc.reads.Customers.List(ctx, shopID, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) create(ctx context.Context, repo repository.CustomerRepository, shopID string, in dto.CustomerPayload, now time.Time) (*entity.Customer, error) {
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	c := &entity.Customer{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		Person:    entity.Person{ID: uuid.New().String()},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCustomer(c, in)
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CustomerUseCase) update(ctx context.Context, repo repository.CustomerRepository, c *entity.Customer, in dto.CustomerPayload, now time.Time) error {
	if err := validateCustomer(in); err != nil {
		return err
	}
	applyCustomer(c, in)
	c.UpdatedAt = now
	return repo.Update(ctx, c)
}

func (uc *CustomerUseCase) logStorage(err error, op string) {
	if !domain.IsBusiness(err) {
		uc.log.Error().Err(err).Msg(op)
	}
}

func validateCustomer(in dto.CustomerPayload) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.DocumentNumber) == "" {
		return fmt.Errorf("%w: first_name y document_number son obligatorios", domain.ErrValidation)
	}
	if in.Address != nil && strings.TrimSpace(in.Address.Location) == "" {
		return fmt.Errorf("%w: address.location es obligatorio", domain.ErrValidation)
	}
	if err := identity.Validate(in.DocumentType, in.DocumentNumber); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func applyCustomer(c *entity.Customer, in dto.CustomerPayload) {
	c.Person.FirstName = strings.TrimSpace(in.FirstName)
	c.Person.LastName = strings.TrimSpace(in.LastName)
	c.Person.DocumentType = strings.ToUpper(in.DocumentType)
	c.Person.DocumentNumber = strings.TrimSpace(in.DocumentNumber)
	c.Person.Email = in.Email
	c.Person.Phone = in.Phone
	if in.Address == nil {
		return
	}
	if c.Address == nil {
		c.Address = &entity.Address{ID: uuid.New().String()}
	}
	c.Address.Location = in.Address.Location
	c.Address.City = in.Address.City
}

// ToCustomerResponse mapea la entidad a la respuesta HTTP.
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	out := dto.CustomerResponse{
		ID:             c.ID,
		PersonID:       c.Person.ID,
		FirstName:      c.Person.FirstName,
		LastName:       c.Person.LastName,
		FullName:       c.Person.FullName(),
		DocumentType:   c.Person.DocumentType,
		DocumentNumber: c.Person.DocumentNumber,
		Email:          c.Person.Email,
		Phone:          c.Person.Phone,
		CreatedAt:      c.CreatedAt,
	}
	if c.Address != nil {
		out.Address = &dto.AddressResponse{ID: c.Address.ID, Location: c.Address.Location, City: c.Address.City}
	}
	return out
}
