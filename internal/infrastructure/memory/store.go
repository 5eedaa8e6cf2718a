// Package memory implementa los repositorios y los TxRunner en memoria.
// Las transacciones se serializan con un mutex y, si el callback falla, se
// restaura la copia tomada al inicio (misma semántica observable que PostgreSQL).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ billing.TxRunner   = (*Store)(nil)
)

type state struct {
	shops      map[string]entity.Shop
	stocks     map[string]entity.Stock
	variants   map[string]entity.ProductVariant
	stockItems map[string]entity.StockItem
	movements  []entity.StockMovement
	customers  map[string]entity.Customer
	documents  map[string]entity.Document
	items      map[string][]entity.LineItem // por document_id
	sequences  map[entity.DocumentKind]int64
	users      map[string]entity.User
}

func newState() *state {
	return &state{
		shops:      map[string]entity.Shop{},
		stocks:     map[string]entity.Stock{},
		variants:   map[string]entity.ProductVariant{},
		stockItems: map[string]entity.StockItem{},
		customers:  map[string]entity.Customer{},
		documents:  map[string]entity.Document{},
		items:      map[string][]entity.LineItem{},
		sequences:  map[entity.DocumentKind]int64{},
		users:      map[string]entity.User{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.shops {
		c.shops[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.variants {
		c.variants[k] = v
	}
	for k, v := range s.stockItems {
		c.stockItems[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.customers {
		c.customers[k] = cloneCustomer(v)
	}
	for k, v := range s.documents {
		c.documents[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.LineItem(nil), v...)
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

func cloneCustomer(c entity.Customer) entity.Customer {
	if c.Address != nil {
		a := *c.Address
		c.Address = &a
	}
	return c
}

// Store almacén en memoria. Los repos que devuelve Reads() toman el mutex en
// cada operación; los que recibe un callback de Run/RunBilling ya lo tienen.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// handle acceso a los datos, con o sin transacción en curso.
type handle struct {
	s    *Store
	inTx bool
}

func (h handle) do(fn func(d *state) error) error {
	if !h.inTx {
		h.s.mu.Lock()
		defer h.s.mu.Unlock()
	}
	return fn(h.s.data)
}

func (s *Store) tx(ctx context.Context, fn func(h handle) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.data.clone()
	if err := fn(handle{s: s, inTx: true}); err != nil {
		s.data = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	stockItems repository.StockItemRepository,
	movements repository.StockMovementRepository,
) error) error {
	return s.tx(ctx, func(h handle) error {
		return fn(&StockItemRepo{h}, &StockMovementRepo{h})
	})
}

// RunBilling implementa billing.TxRunner.
func (s *Store) RunBilling(ctx context.Context, fn func(r billing.Repos) error) error {
	return s.tx(ctx, func(h handle) error {
		return fn(repos(h))
	})
}

// Reads repos sin transacción (equivalente a usar el pool).
func (s *Store) Reads() billing.Repos {
	return repos(handle{s: s})
}

// Reports repositorio de reportes.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{handle{s: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{handle{s: s}} }

func repos(h handle) billing.Repos {
	return billing.Repos{
		Customers:  &CustomerRepo{h},
		Shops:      &ShopRepo{h},
		Variants:   &VariantRepo{h},
		StockItems: &StockItemRepo{h},
		Movements:  &StockMovementRepo{h},
		Sequences:  &SequenceRepo{h},
		Documents:  &DocumentRepo{h},
		Items:      &LineItemRepo{h},
	}
}

// ── Datos de catálogo (colaboradores de solo lectura) ─────────────────────────

// AddShop registra una tienda.
func (s *Store) AddShop(shop entity.Shop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.shops[shop.ID] = shop
}

// AddStock registra una bodega.
func (s *Store) AddStock(stock entity.Stock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.stocks[stock.ID] = stock
}

// AddVariant registra una variante de producto.
func (s *Store) AddVariant(v entity.ProductVariant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.variants[v.ID] = v
}

// AddStockItem registra (o reemplaza) el stock de una variante en una bodega.
func (s *Store) AddStockItem(it entity.StockItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.stockItems[it.ID] = it
}

// Movements copia de los movimientos registrados por el ledger.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.data.movements...)
}
