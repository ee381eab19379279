package memory

import (
	"context"
	"sort"
	"time"

	"animal-shelter/internal/domain/cats"
)

type opsRepo struct {
	s *Store
}

func (r *opsRepo) Create(ctx context.Context, op *cats.PendingOp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	op.ID = r.s.st.nextOp
	r.s.st.nextOp++
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now().UTC()
	}
	r.s.st.ops[op.ID] = *op
	return nil
}

func (r *opsRepo) List(ctx context.Context) ([]cats.PendingOp, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]cats.PendingOp, 0, len(r.s.st.ops))
	for _, op := range r.s.st.ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *opsRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.st.ops, id)
	return nil
}
