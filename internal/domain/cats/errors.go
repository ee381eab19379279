package cats

import "errors"

var (
	ErrNotFound = errors.New("cat not found")

	// ErrInvalidInput cubre los errores de clase BadRequest: campos
	// inválidos, archivos rechazados, foto que no pertenece al gato.
	ErrInvalidInput = errors.New("invalid input")
)
