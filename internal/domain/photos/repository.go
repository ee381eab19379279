package photos

import "context"

type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id int64) (Photo, error)
	ListByCat(ctx context.Context, catID int64) ([]Photo, error)
	Delete(ctx context.Context, id int64) error

	// DeleteByCat borra todas las filas del gato. El orquestador la usa
	// porque el cascade no está garantizado en todas las revisiones.
	DeleteByCat(ctx context.Context, catID int64) error
}
