package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
// Create y Update escriben en persons, addresses y customers: llamarlos dentro de una tx.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerSelect = `
	SELECT c.id, c.shop_id, c.created_at, c.updated_at,
	       p.id, p.first_name, p.last_name, p.document_type, p.document_number, p.email, p.phone,
	       a.id, a.location, a.city
	FROM customers c
	JOIN persons p ON p.id = c.person_id
	LEFT JOIN addresses a ON a.id = c.address_id`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var addrID, location, city *string
	err := row.Scan(
		&c.ID, &c.ShopID, &c.CreatedAt, &c.UpdatedAt,
		&c.Person.ID, &c.Person.FirstName, &c.Person.LastName, &c.Person.DocumentType,
		&c.Person.DocumentNumber, &c.Person.Email, &c.Person.Phone,
		&addrID, &location, &city,
	)
	if err != nil {
		return nil, err
	}
	if addrID != nil {
		c.Address = &entity.Address{ID: *addrID, Location: deref(location), City: deref(city)}
	}
	return &c, nil
}

// Create persiste persona, dirección (si hay) y cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if err := r.insertPerson(ctx, &c.Person); err != nil {
		return err
	}
	addressID := ""
	if c.Address != nil {
		if err := r.upsertAddress(ctx, c.Address); err != nil {
			return err
		}
		addressID = c.Address.ID
	}
	query := `
		INSERT INTO customers (id, shop_id, person_id, address_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.ShopID, c.Person.ID, nullable(addressID), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrapWrite("insert customer", err)
	}
	return nil
}

// Update reescribe persona y dirección del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE persons
		SET first_name = $2, last_name = $3, document_type = $4, document_number = $5, email = $6, phone = $7
		WHERE id = $1`
	p := c.Person
	if _, err := r.q.Exec(ctx, query, p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber, p.Email, p.Phone); err != nil {
		return wrapWrite("update person", err)
	}
	addressID := ""
	if c.Address != nil {
		if err := r.upsertAddress(ctx, c.Address); err != nil {
			return err
		}
		addressID = c.Address.ID
	}
	tag, err := r.q.Exec(ctx, `UPDATE customers SET address_id = $2, updated_at = $3 WHERE id = $1`,
		c.ID, nullable(addressID), c.UpdatedAt)
	if err != nil {
		return wrapWrite("update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) insertPerson(ctx context.Context, p *entity.Person) error {
	query := `
		INSERT INTO persons (id, first_name, last_name, document_type, document_number, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber, p.Email, p.Phone); err != nil {
		return wrapWrite("insert person", err)
	}
	return nil
}

func (r *CustomerRepo) upsertAddress(ctx context.Context, a *entity.Address) error {
	query := `
		INSERT INTO addresses (id, location, city) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET location = EXCLUDED.location, city = EXCLUDED.city`
	if _, err := r.q.Exec(ctx, query, a.ID, a.Location, a.City); err != nil {
		return wrapWrite("upsert address", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get customer", err)
	}
	return c, nil
}

// GetByPersonID obtiene el cliente asociado a una persona.
func (r *CustomerRepo) GetByPersonID(ctx context.Context, personID string) (*entity.Customer, error) {
	if !validID(personID) {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE c.person_id = $1`, personID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get customer by person", err)
	}
	return c, nil
}

// List lista clientes de la tienda (vacío = todas) con búsqueda por nombre o documento.
func (r *CustomerRepo) List(ctx context.Context, shopID, search string, limit, offset int) ([]*entity.Customer, error) {
	query := customerSelect + `
		WHERE ($1 = '' OR c.shop_id::TEXT = $1)
		  AND ($2 = '' OR (p.first_name || ' ' || p.last_name) ILIKE '%' || $2 || '%' OR p.document_number LIKE $2 || '%')
		ORDER BY c.created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, shopID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
