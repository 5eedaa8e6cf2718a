package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ShopRepository           = (*ShopRepo)(nil)
	_ repository.ProductVariantRepository = (*VariantRepo)(nil)
	_ repository.StockItemRepository      = (*StockItemRepo)(nil)
	_ repository.StockMovementRepository  = (*StockMovementRepo)(nil)
	_ repository.CustomerRepository       = (*CustomerRepo)(nil)
	_ repository.DocumentRepository       = (*DocumentRepo)(nil)
	_ repository.LineItemRepository       = (*LineItemRepo)(nil)
	_ repository.SequenceRepository       = (*SequenceRepo)(nil)
	_ repository.UserRepository           = (*UserRepo)(nil)
)

// ShopRepo tiendas y bodegas.
type ShopRepo struct{ h handle }

func (r *ShopRepo) GetBySlug(_ context.Context, slug string) (*entity.Shop, error) {
	var out *entity.Shop
	err := r.h.do(func(d *state) error {
		for _, s := range d.shops {
			if s.Slug == slug {
				s := s
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ShopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	var out *entity.Shop
	err := r.h.do(func(d *state) error {
		if s, ok := d.shops[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *ShopRepo) GetStock(_ context.Context, stockID string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.h.do(func(d *state) error {
		if s, ok := d.stocks[stockID]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// VariantRepo variantes de producto.
type VariantRepo struct{ h handle }

func (r *VariantRepo) GetByID(_ context.Context, id string) (*entity.ProductVariant, error) {
	var out *entity.ProductVariant
	err := r.h.do(func(d *state) error {
		if v, ok := d.variants[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

// StockItemRepo stock por variante y bodega. GetForUpdate no necesita bloqueo
// propio: la transacción ya tiene el mutex del Store.
type StockItemRepo struct{ h handle }

func (r *StockItemRepo) Get(ctx context.Context, productVariantID, stockID string) (*entity.StockItem, error) {
	return r.find(productVariantID, stockID)
}

func (r *StockItemRepo) GetForUpdate(ctx context.Context, productVariantID, stockID string) (*entity.StockItem, error) {
	return r.find(productVariantID, stockID)
}

func (r *StockItemRepo) find(productVariantID, stockID string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.h.do(func(d *state) error {
		for _, it := range d.stockItems {
			if it.ProductVariantID == productVariantID && it.StockID == stockID {
				it := it
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *StockItemRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal, at time.Time) error {
	return r.h.do(func(d *state) error {
		it, ok := d.stockItems[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.Quantity = quantity
		it.UpdatedAt = at
		d.stockItems[id] = it
		return nil
	})
}

func (r *StockItemRepo) ListByVariant(_ context.Context, productVariantID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	err := r.h.do(func(d *state) error {
		for _, it := range d.stockItems {
			if it.ProductVariantID == productVariantID {
				it := it
				out = append(out, &it)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StockID < out[j].StockID })
	return out, err
}

// StockMovementRepo auditoría del ledger.
type StockMovementRepo struct{ h handle }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.h.do(func(d *state) error {
		d.movements = append(d.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.h.do(func(d *state) error {
		for _, m := range d.movements {
			if m.DocumentID == documentID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

// CustomerRepo clientes con persona y dirección.
type CustomerRepo struct{ h handle }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.h.do(func(d *state) error {
		if _, ok := d.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		d.customers[c.ID] = cloneCustomer(*c)
		return nil
	})
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.h.do(func(d *state) error {
		if _, ok := d.customers[c.ID]; !ok {
			return domain.ErrNotFound
		}
		d.customers[c.ID] = cloneCustomer(*c)
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.h.do(func(d *state) error {
		if c, ok := d.customers[id]; ok {
			c = cloneCustomer(c)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetByPersonID(_ context.Context, personID string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.h.do(func(d *state) error {
		for _, c := range d.customers {
			if c.Person.ID == personID {
				c = cloneCustomer(c)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(_ context.Context, shopID, search string, limit, offset int) ([]*entity.Customer, error) {
	var all []*entity.Customer
	search = strings.ToLower(search)
	err := r.h.do(func(d *state) error {
		for _, c := range d.customers {
			if shopID != "" && c.ShopID != shopID {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(c.Person.FullName()), search) &&
				!strings.Contains(c.Person.DocumentNumber, search) {
				continue
			}
			c := cloneCustomer(c)
			all = append(all, &c)
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), err
}

// DocumentRepo cabeceras de documentos. Items se guardan aparte (LineItemRepo).
type DocumentRepo struct{ h handle }

func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	return r.h.do(func(d *state) error {
		for _, other := range d.documents {
			if other.ID == doc.ID || other.SerialNumber == doc.SerialNumber {
				return domain.ErrDuplicate
			}
		}
		header := *doc
		header.Items = nil
		d.documents[doc.ID] = header
		return nil
	})
}

func (r *DocumentRepo) Update(_ context.Context, doc *entity.Document) error {
	return r.h.do(func(d *state) error {
		cur, ok := d.documents[doc.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.CustomerID = doc.CustomerID
		cur.DiscountType = doc.DiscountType
		cur.Discount = doc.Discount
		cur.Shipping = doc.Shipping
		cur.Subtotal = doc.Subtotal
		cur.Total = doc.Total
		cur.Notes = doc.Notes
		cur.UpdatedAt = doc.UpdatedAt
		d.documents[doc.ID] = cur
		return nil
	})
}

func (r *DocumentRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	return r.h.do(func(d *state) error {
		cur, ok := d.documents[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = status
		cur.UpdatedAt = at
		d.documents[id] = cur
		return nil
	})
}

func (r *DocumentRepo) GetByID(_ context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	var out *entity.Document
	err := r.h.do(func(d *state) error {
		if doc, ok := d.documents[id]; ok && doc.Kind == kind {
			out = &doc
		}
		return nil
	})
	return out, err
}

func (r *DocumentRepo) GetByIDForUpdate(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	return r.GetByID(ctx, kind, id)
}

func (r *DocumentRepo) GetBySerial(_ context.Context, kind entity.DocumentKind, serial string) (*entity.Document, error) {
	var out *entity.Document
	err := r.h.do(func(d *state) error {
		for _, doc := range d.documents {
			if doc.Kind == kind && doc.SerialNumber == serial {
				doc := doc
				out = &doc
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *DocumentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	var all []*entity.Document
	err := r.h.do(func(d *state) error {
		for _, doc := range d.documents {
			if doc.Kind != f.Kind {
				continue
			}
			if f.ShopID != "" && doc.ShopID != f.ShopID {
				continue
			}
			if f.Status != "" && doc.Status != f.Status {
				continue
			}
			doc := doc
			all = append(all, &doc)
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].SerialNumber > all[j].SerialNumber })
	return page(all, f.Limit, f.Offset), err
}

func (r *DocumentRepo) Delete(_ context.Context, kind entity.DocumentKind, id string) (int64, error) {
	var n int64
	err := r.h.do(func(d *state) error {
		doc, ok := d.documents[id]
		if !ok || doc.Kind != kind {
			return nil
		}
		delete(d.documents, id)
		delete(d.items, id)
		n = 1
		return nil
	})
	return n, err
}

// LineItemRepo líneas por documento.
type LineItemRepo struct{ h handle }

func (r *LineItemRepo) Create(_ context.Context, item *entity.LineItem) error {
	return r.h.do(func(d *state) error {
		if _, ok := d.documents[item.DocumentID]; !ok {
			return domain.ErrNotFound
		}
		d.items[item.DocumentID] = append(d.items[item.DocumentID], *item)
		return nil
	})
}

func (r *LineItemRepo) ListByDocument(_ context.Context, documentID string) ([]entity.LineItem, error) {
	var out []entity.LineItem
	err := r.h.do(func(d *state) error {
		out = append([]entity.LineItem(nil), d.items[documentID]...)
		return nil
	})
	return out, err
}

func (r *LineItemRepo) DeleteByDocument(_ context.Context, documentID string) error {
	return r.h.do(func(d *state) error {
		delete(d.items, documentID)
		return nil
	})
}

// SequenceRepo consecutivos por tipo de documento.
type SequenceRepo struct{ h handle }

func (r *SequenceRepo) Next(_ context.Context, kind entity.DocumentKind) (int64, error) {
	var n int64
	err := r.h.do(func(d *state) error {
		d.sequences[kind]++
		n = d.sequences[kind]
		return nil
	})
	return n, err
}

// UserRepo usuarios.
type UserRepo struct{ h handle }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.h.do(func(d *state) error {
		for _, other := range d.users {
			if other.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.h.do(func(d *state) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.h.do(func(d *state) error {
		for _, u := range d.users {
			if u.Email == email {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
