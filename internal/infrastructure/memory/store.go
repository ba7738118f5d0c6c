package memory

import (
	"context"
	"sync"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store almacenamiento en memoria que implementa todos los repositorios.
// Las transacciones toman el lock global y restauran una copia del estado si fn falla.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	products     map[string]*entity.Product
	movements    []*entity.Movement
	maintenances map[string]*entity.Maintenance
	history      map[string][]*entity.ProductHistory
	audit        []*entity.AuditEntry
	users        map[string]*entity.User
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: &state{
		products:     make(map[string]*entity.Product),
		maintenances: make(map[string]*entity.Maintenance),
		history:      make(map[string][]*entity.ProductHistory),
		users:        make(map[string]*entity.User),
	}}
}

func (s *state) clone() *state {
	c := &state{
		products:     make(map[string]*entity.Product, len(s.products)),
		movements:    append([]*entity.Movement(nil), s.movements...),
		maintenances: make(map[string]*entity.Maintenance, len(s.maintenances)),
		history:      make(map[string][]*entity.ProductHistory, len(s.history)),
		audit:        append([]*entity.AuditEntry(nil), s.audit...),
		users:        make(map[string]*entity.User, len(s.users)),
	}
	for k, v := range s.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range s.maintenances {
		m := *v
		c.maintenances[k] = &m
	}
	for k, v := range s.history {
		c.history[k] = append([]*entity.ProductHistory(nil), v...)
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	return c
}

// do ejecuta fn con el estado; toma el lock salvo dentro de una transacción.
func (s *Store) do(locked bool, fn func(st *state) error) error {
	if !locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

// Run serializa las transacciones y descarta los cambios si fn devuelve error.
func (s *Store) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.st.clone()
	tx := repository.Tx{
		Products:     &ProductRepo{s: s, locked: true},
		Movements:    &MovementRepo{s: s, locked: true},
		Maintenances: &MaintenanceRepo{s: s, locked: true},
		History:      &ProductHistoryRepo{s: s, locked: true},
	}
	if err := fn(tx); err != nil {
		s.st = backup
		return err
	}
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements repositorio del libro fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Maintenances repositorio de mantenimientos fuera de transacción.
func (s *Store) Maintenances() *MaintenanceRepo { return &MaintenanceRepo{s: s} }

// History repositorio de versiones fuera de transacción.
func (s *Store) History() *ProductHistoryRepo { return &ProductHistoryRepo{s: s} }

// Audit repositorio de auditoría.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.CostoUnitario != nil {
		cost := *p.CostoUnitario
		c.CostoUnitario = &cost
	}
	return &c
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	if offset > 0 {
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
