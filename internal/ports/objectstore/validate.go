package objectstore

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// MaxFiles limita cuántas fotos acepta una sola operación.
	MaxFiles = 10

	// MaxFileSize limita el tamaño por archivo (5 MiB).
	MaxFileSize = 5 << 20
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ValidateFiles aplica las reglas locales de subida. Corre siempre antes
// de tocar el object store: un lote inválido no genera ninguna llamada
// remota ni fila de foto.
func ValidateFiles(files []File) error {
	if len(files) > MaxFiles {
		return fmt.Errorf("%w: too many files (%d, max %d)", ErrInvalidFile, len(files), MaxFiles)
	}
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if !allowedExtensions[ext] {
			return fmt.Errorf("%w: %q has an invalid file type, only image files are allowed", ErrInvalidFile, f.Name)
		}
		if len(f.Content) > MaxFileSize {
			return fmt.Errorf("%w: %q exceeds the %d byte limit", ErrInvalidFile, f.Name, MaxFileSize)
		}
	}
	return nil
}
