// Package objectstore define el puerto hacia el almacenamiento externo de
// fotos. Los adapters (S3, disco local) lo implementan; el orquestador de
// gatos solo conoce esta interfaz.
package objectstore

import "context"

// File es un archivo entrante ya leído en memoria (las fotos están
// limitadas a 5 MiB, ver validate.go).
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Upload es el resultado de subir un archivo: URL de lectura pública y el
// identificador remoto que permite borrar ese objeto puntual.
type Upload struct {
	URL    string
	FileID string
}

// Gateway maneja el ciclo de vida de carpetas y archivos remotos.
//
// La identidad de carpeta es determinística: se deriva del id del gato y
// nunca se busca por nombre visible (el nombre visible vive en metadata y
// solo afecta a RenameFolder). Así no existe la carrera del
// find-or-create por nombre.
//
// El gateway no reintenta: una llamada remota fallida aborta la operación
// que la contiene. La política de reintentos vive en el orquestador.
type Gateway interface {
	// EnsureRootFolder crea (idempotente) el contenedor raíz de fotos y
	// devuelve su identificador.
	EnsureRootFolder(ctx context.Context) (string, error)

	// EnsureCatFolder crea (idempotente) la carpeta del gato bajo root y
	// devuelve su identificador. name es solo display metadata.
	EnsureCatFolder(ctx context.Context, root string, catID int64, name string) (string, error)

	// UploadFiles sube los archivos a la carpeta. Si falla a mitad de
	// camino devuelve, junto al error, los uploads ya hechos para que el
	// caller pueda compensarlos.
	UploadFiles(ctx context.Context, folder string, files []File) ([]Upload, error)

	// RenameFolder actualiza el nombre visible de la carpeta.
	RenameFolder(ctx context.Context, folder string, newName string) error

	// ListFileIDs devuelve los identificadores de archivo de la carpeta.
	ListFileIDs(ctx context.Context, folder string) ([]string, error)

	DeleteFile(ctx context.Context, fileID string) error

	// DeleteFolder borra todos los archivos de la carpeta y la carpeta
	// misma. ErrNotFound si no existe nada que borrar.
	DeleteFolder(ctx context.Context, folder string) error
}
