package postgres

import (
	"context"
	"database/sql"
)

// DBTX es el subconjunto de database/sql que usan los repos. Lo satisfacen
// *sql.DB y *sql.Tx, así el mismo repo sirve dentro y fuera de una
// transacción.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx abre una transacción, corre fn con el handle transaccional y
// commitea si fn no falla; rollback ante error o panic (el panic se
// relanza).
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
