package objectstore

import "errors"

var (
	// ErrNotFound: carpeta o archivo remoto inexistente.
	ErrNotFound = errors.New("object store: not found")

	// ErrUnauthorized: credenciales remotas vencidas o inválidas.
	ErrUnauthorized = errors.New("object store: unauthorized")

	// ErrService: cualquier otra falla remota o inesperada.
	ErrService = errors.New("object store: service failure")

	// ErrInvalidFile: archivo rechazado por validación local (extensión,
	// tamaño o cantidad). Se corta antes de cualquier llamada remota.
	ErrInvalidFile = errors.New("invalid file")
)
