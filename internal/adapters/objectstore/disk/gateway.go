// Package disk implementa el gateway de fotos sobre el filesystem local,
// el backend de las primeras revisiones del servicio. Los identificadores
// de carpeta y archivo son rutas relativas a la raíz configurada, así la
// base de datos no queda atada a una ruta absoluta de despliegue.
package disk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"animal-shelter/internal/ports/objectstore"
)

// nameFile guarda el nombre visible de la carpeta. El directorio se llama
// por el id del gato y nunca cambia: un rename solo reescribe este archivo.
const nameFile = ".name"

type Gateway struct {
	root string
}

func New(root string) (*Gateway, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create photos dir: %w", err)
	}
	return &Gateway{root: root}, nil
}

// EnsureRootFolder: la raíz es el propio directorio configurado; su
// identificador es la cadena vacía.
func (g *Gateway) EnsureRootFolder(ctx context.Context) (string, error) {
	if err := os.MkdirAll(g.root, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}
	return "", nil
}

func (g *Gateway) EnsureCatFolder(ctx context.Context, root string, catID int64, name string) (string, error) {
	folder := filepath.ToSlash(filepath.Join(root, strconv.FormatInt(catID, 10)))
	dir := filepath.Join(g.root, folder)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}
	if _, err := os.Stat(filepath.Join(dir, nameFile)); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(filepath.Join(dir, nameFile), []byte(name), 0o644); err != nil {
			return "", fmt.Errorf("%w: %v", objectstore.ErrService, err)
		}
	}
	return folder, nil
}

func (g *Gateway) UploadFiles(ctx context.Context, folder string, files []objectstore.File) ([]objectstore.Upload, error) {
	uploads := make([]objectstore.Upload, 0, len(files))
	for _, f := range files {
		rel := filepath.ToSlash(filepath.Join(folder, uuid.NewString()+strings.ToLower(filepath.Ext(f.Name))))

		if err := os.WriteFile(filepath.Join(g.root, rel), f.Content, 0o644); err != nil {
			return uploads, fmt.Errorf("%w: %v", objectstore.ErrService, err)
		}

		uploads = append(uploads, objectstore.Upload{
			URL:    "/photos/" + rel,
			FileID: rel,
		})
	}
	return uploads, nil
}

func (g *Gateway) RenameFolder(ctx context.Context, folder string, newName string) error {
	dir := filepath.Join(g.root, folder)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return objectstore.ErrNotFound
		}
		return fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}

	if err := os.WriteFile(filepath.Join(dir, nameFile), []byte(newName), 0o644); err != nil {
		return fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}
	return nil
}

func (g *Gateway) ListFileIDs(ctx context.Context, folder string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(g.root, folder))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, objectstore.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || e.Name() == nameFile {
			continue
		}
		out = append(out, filepath.ToSlash(filepath.Join(folder, e.Name())))
	}
	return out, nil
}

func (g *Gateway) DeleteFile(ctx context.Context, fileID string) error {
	if err := os.Remove(filepath.Join(g.root, fileID)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return objectstore.ErrNotFound
		}
		return fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}
	return nil
}

func (g *Gateway) DeleteFolder(ctx context.Context, folder string) error {
	path := filepath.Join(g.root, folder)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return objectstore.ErrNotFound
		}
		return fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}
	return nil
}

// FolderName lee el nombre visible actual de la carpeta.
func (g *Gateway) FolderName(folder string) (string, error) {
	b, err := os.ReadFile(filepath.Join(g.root, folder, nameFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", objectstore.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", objectstore.ErrService, err)
	}
	return string(b), nil
}

var _ objectstore.Gateway = (*Gateway)(nil)
