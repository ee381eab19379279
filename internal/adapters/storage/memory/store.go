// Package memory implementa cats.Store en memoria. Se usa en modo dev
// (sin DB_DSN) y en los tests de router/servicio.
package memory

import (
	"context"
	"sync"

	"animal-shelter/internal/domain/cats"
	"animal-shelter/internal/domain/photos"
)

type state struct {
	cats      map[int64]cats.Cat
	photos    map[int64]photos.Photo
	ops       map[int64]cats.PendingOp
	nextCat   int64
	nextPhoto int64
	nextOp    int64
}

func (st *state) clone() *state {
	cp := &state{
		cats:      make(map[int64]cats.Cat, len(st.cats)),
		photos:    make(map[int64]photos.Photo, len(st.photos)),
		ops:       make(map[int64]cats.PendingOp, len(st.ops)),
		nextCat:   st.nextCat,
		nextPhoto: st.nextPhoto,
		nextOp:    st.nextOp,
	}
	for k, v := range st.cats {
		v.Photos = nil
		cp.cats[k] = v
	}
	for k, v := range st.photos {
		cp.photos[k] = v
	}
	for k, v := range st.ops {
		cp.ops[k] = v
	}
	return cp
}

type Store struct {
	mu sync.RWMutex // protege st
	tx sync.Mutex   // serializa transacciones

	st *state
}

func NewStore() *Store {
	return &Store{
		st: &state{
			cats:      make(map[int64]cats.Cat),
			photos:    make(map[int64]photos.Photo),
			ops:       make(map[int64]cats.PendingOp),
			nextCat:   1,
			nextPhoto: 1,
			nextOp:    1,
		},
	}
}

func (s *Store) Cats() cats.Repository                 { return &catsRepo{s: s} }
func (s *Store) Photos() photos.Repository             { return &photosRepo{s: s} }
func (s *Store) PendingOps() cats.PendingOpsRepository { return &opsRepo{s: s} }

// InTx simula la transacción con snapshot + restore: si fn falla se vuelve
// al estado previo completo, igual que un rollback.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, st cats.Store) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}
