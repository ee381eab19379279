package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animal-shelter/internal/domain/cats"
	"animal-shelter/internal/domain/photos"
)

// Store implementa cats.Store sobre Postgres. Fuera de InTx los repos
// operan en autocommit; dentro, todos comparten la misma transacción.
type Store struct {
	db *sql.DB // nil cuando el Store está ligado a una transacción
	q  DBTX
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Cats() cats.Repository             { return &CatsRepo{q: s.q} }
func (s *Store) Photos() photos.Repository         { return &PhotosRepo{q: s.q} }
func (s *Store) PendingOps() cats.PendingOpsRepository { return &PendingOpsRepo{q: s.q} }

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, st cats.Store) error) error {
	if s.db == nil {
		// Ya estamos dentro de una transacción: no anidamos.
		return fn(ctx, s)
	}
	return withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &Store{q: tx})
	})
}

// mapNotFound traduce sql.ErrNoRows al sentinel del dominio que toque
// (cats.ErrNotFound o photos.ErrNotFound).
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}
