package repository

import "context"

// Tx repositorios atados a una misma transacción.
type Tx struct {
	Products     ProductRepository
	Movements    MovementRepository
	Maintenances MaintenanceRepository
	History      ProductHistoryRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Tx) error) error
}
