package cats

import (
	"context"

	"animal-shelter/internal/domain/photos"
)

type Repository interface {
	Create(ctx context.Context, c *Cat) error
	GetByID(ctx context.Context, id int64) (Cat, error)
	GetWithPhotos(ctx context.Context, id int64) (Cat, error)

	// List pagina por offset en orden de inserción (id ascendente).
	List(ctx context.Context, skip, limit int) ([]Cat, error)

	Update(ctx context.Context, c Cat) error
	SetStorageFolder(ctx context.Context, id int64, folder string) error

	// IncrementViews suma 1 al contador y devuelve el valor nuevo.
	IncrementViews(ctx context.Context, id int64) (int64, error)

	Delete(ctx context.Context, id int64) error
}

// Store agrupa los repositorios que participan de una misma transacción.
// Los repos nunca commitean por su cuenta a través de varias mutaciones:
// el orquestador decide el límite transaccional vía InTx.
type Store interface {
	Cats() Repository
	Photos() photos.Repository
	PendingOps() PendingOpsRepository

	// InTx ejecuta fn dentro de una transacción. Si fn devuelve error se
	// hace rollback completo; si no, commit. El Store que recibe fn está
	// ligado a la transacción.
	InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
