package cats

import (
	"context"
	"time"
)

// OpKind clasifica las escrituras multi-paso que tocan base y object store.
type OpKind string

const (
	// OpPhotosUpload marca un alta de fotos en curso (creación con fotos
	// o "only_photos"). Si queda huérfana, los objetos remotos sin fila
	// de foto asociada se limpian.
	OpPhotosUpload OpKind = "photos_upload"

	// OpCatDelete marca un borrado de gato en curso. El borrado remoto es
	// idempotente, así que la reconciliación simplemente lo repite y
	// termina el borrado local.
	OpCatDelete OpKind = "cat_delete"

	// OpFolderRename marca un rename remoto pendiente tras un update de
	// nombre ya commiteado localmente.
	OpFolderRename OpKind = "folder_rename"
)

// PendingOp es el marcador durable de una saga: se inserta en la misma
// transacción que hace el primer cambio local y se borra en la que cierra
// la operación. Lo que quede al arrancar el proceso lo retoma Reconcile.
type PendingOp struct {
	ID        int64
	Kind      OpKind
	CatID     int64
	Folder    string
	Payload   string
	CreatedAt time.Time
}

type PendingOpsRepository interface {
	Create(ctx context.Context, op *PendingOp) error
	List(ctx context.Context) ([]PendingOp, error)
	Delete(ctx context.Context, id int64) error
}
