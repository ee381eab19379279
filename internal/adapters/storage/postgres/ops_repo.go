package postgres

import (
	"context"
	"fmt"

	"animal-shelter/internal/domain/cats"
)

// PendingOpsRepo persiste los marcadores de saga. Siempre se escribe en la
// misma transacción que el cambio local al que acompaña.
type PendingOpsRepo struct {
	q DBTX
}

func NewPendingOpsRepo(q DBTX) *PendingOpsRepo {
	return &PendingOpsRepo{q: q}
}

func (r *PendingOpsRepo) Create(ctx context.Context, op *cats.PendingOp) error {
	row := r.q.QueryRowContext(ctx, `
		INSERT INTO pending_operations (kind, cat_id, folder, payload)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, created_at
	`, string(op.Kind), op.CatID, op.Folder, op.Payload)

	if err := row.Scan(&op.ID, &op.CreatedAt); err != nil {
		return fmt.Errorf("insert pending op: %w", err)
	}
	return nil
}

func (r *PendingOpsRepo) List(ctx context.Context) ([]cats.PendingOp, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, kind, cat_id, COALESCE(folder, ''), COALESCE(payload, ''), created_at
		FROM pending_operations
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list pending ops: %w", err)
	}
	defer rows.Close()

	out := make([]cats.PendingOp, 0)
	for rows.Next() {
		var op cats.PendingOp
		if err := rows.Scan(&op.ID, &op.Kind, &op.CatID, &op.Folder, &op.Payload, &op.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, rows.Err()
}

func (r *PendingOpsRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM pending_operations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pending op: %w", err)
	}
	return nil
}
