package cats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-retry"

	"animal-shelter/internal/domain/photos"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/objectstore"
)

const (
	// MaxListLimit acota el tamaño de página de List.
	MaxListLimit = 100

	renameRetries = 3
	renameBackoff = 200 * time.Millisecond
)

// Service es el orquestador de ciclo de vida: coordina el Store relacional
// y el gateway de fotos para que filas y objetos remotos se muevan juntos.
// Cada escritura multi-paso deja un PendingOp durable antes de tocar el
// object store; Reconcile retoma lo que haya quedado a medias.
type Service struct {
	store    Store
	gw       objectstore.Gateway // nil = backend "none", solo metadata
	log      logger.Logger
	validate *validator.Validate
}

func NewService(store Store, gw objectstore.Gateway, log logger.Logger) *Service {
	return &Service{
		store:    store,
		gw:       gw,
		log:      log,
		validate: validator.New(),
	}
}

type CreateInput struct {
	Name       string `validate:"max=80"`
	Age        *int   `validate:"omitempty,gte=0,lte=30"`
	Gender     string `validate:"required,oneof=male female"`
	About      string `validate:"max=2000"`
	Sterilized bool
}

// UpdateInput usa punteros para semántica exclude-unset: nil = no tocar.
type UpdateInput struct {
	Name       *string `validate:"omitempty,max=80"`
	Age        *int    `validate:"omitempty,gte=0,lte=30"`
	Gender     *string `validate:"omitempty,oneof=male female"`
	About      *string `validate:"omitempty,max=2000"`
	Sterilized *bool
}

// Create inserta la ficha y, si vienen archivos, los sube y registra sus
// fotos. Ante falla remota el gato recién creado se compensa (se borra) y
// se propaga el error original.
func (s *Service) Create(ctx context.Context, in CreateInput, files []objectstore.File) (Cat, error) {
	if err := s.validate.Struct(in); err != nil {
		return Cat{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(files) > 0 {
		if s.gw == nil {
			return Cat{}, fmt.Errorf("%w: photo storage is disabled", ErrInvalidInput)
		}
		if err := objectstore.ValidateFiles(files); err != nil {
			return Cat{}, err
		}
	}

	cat := Cat{
		Name:       in.Name,
		Age:        in.Age,
		Gender:     Gender(in.Gender),
		About:      in.About,
		Sterilized: in.Sterilized,
	}

	var op PendingOp
	err := s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		if err := st.Cats().Create(ctx, &cat); err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
		op = PendingOp{Kind: OpPhotosUpload, CatID: cat.ID}
		return st.PendingOps().Create(ctx, &op)
	})
	if err != nil {
		return Cat{}, err
	}

	if len(files) == 0 {
		return s.store.Cats().GetWithPhotos(ctx, cat.ID)
	}

	folder, uploads, err := s.upload(ctx, cat.ID, cat.Name, files)
	if err != nil {
		s.compensateCreate(ctx, cat.ID, op.ID, uploads)
		return Cat{}, err
	}

	err = s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		for _, up := range uploads {
			p := photos.Photo{URL: up.URL, FileID: up.FileID, CatID: cat.ID}
			if err := st.Photos().Create(ctx, &p); err != nil {
				return err
			}
		}
		if err := st.Cats().SetStorageFolder(ctx, cat.ID, folder); err != nil {
			return err
		}
		return st.PendingOps().Delete(ctx, op.ID)
	})
	if err != nil {
		s.compensateCreate(ctx, cat.ID, op.ID, uploads)
		return Cat{}, err
	}

	return s.store.Cats().GetWithPhotos(ctx, cat.ID)
}

// Get devuelve la ficha con fotos y suma una vista.
func (s *Service) Get(ctx context.Context, id int64) (Cat, error) {
	c, err := s.store.Cats().GetWithPhotos(ctx, id)
	if err != nil {
		return Cat{}, err
	}

	views, err := s.store.Cats().IncrementViews(ctx, id)
	if err != nil {
		// La vista perdida no invalida la lectura.
		s.log.Warn("increment views failed", map[string]any{"cat_id": id, "error": err.Error()})
	} else {
		c.Views = views
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Cat, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.store.Cats().List(ctx, skip, limit)
}

// Update aplica solo los campos presentes. Si el nombre cambia y el gato
// tiene carpeta remota, renombra la carpeta con reintentos acotados; si
// aun así falla, el update local queda commiteado, el marcador
// folder_rename persiste para Reconcile y la llamada devuelve el error
// remoto.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Cat, error) {
	if err := s.validate.Struct(in); err != nil {
		return Cat{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cur, err := s.store.Cats().GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}

	merged := cur
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Age != nil {
		merged.Age = in.Age
	}
	if in.Gender != nil {
		merged.Gender = Gender(*in.Gender)
	}
	if in.About != nil {
		merged.About = *in.About
	}
	if in.Sterilized != nil {
		merged.Sterilized = *in.Sterilized
	}

	renameNeeded := s.gw != nil && cur.StorageFolder != "" && merged.Name != cur.Name

	var op PendingOp
	err = s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		if err := st.Cats().Update(ctx, merged); err != nil {
			return err
		}
		if !renameNeeded {
			return nil
		}
		op = PendingOp{Kind: OpFolderRename, CatID: id, Folder: cur.StorageFolder, Payload: merged.Name}
		return st.PendingOps().Create(ctx, &op)
	})
	if err != nil {
		return Cat{}, err
	}

	if renameNeeded {
		if err := s.renameWithRetry(ctx, cur.StorageFolder, merged.Name); err != nil {
			s.log.Warn("remote rename failed, pending op kept", map[string]any{
				"cat_id": id, "error": err.Error(),
			})
			return Cat{}, err
		}
		if err := s.store.PendingOps().Delete(ctx, op.ID); err != nil {
			s.log.Warn("drop rename marker failed", map[string]any{"op_id": op.ID, "error": err.Error()})
		}
	}

	return s.store.Cats().GetWithPhotos(ctx, id)
}

// AddPhotos sube archivos a un gato existente y registra una fila de foto
// por cada uno.
func (s *Service) AddPhotos(ctx context.Context, id int64, files []objectstore.File) (Cat, error) {
	if s.gw == nil {
		return Cat{}, fmt.Errorf("%w: photo storage is disabled", ErrInvalidInput)
	}
	if len(files) == 0 {
		return Cat{}, fmt.Errorf("%w: no files supplied", ErrInvalidInput)
	}
	if err := objectstore.ValidateFiles(files); err != nil {
		return Cat{}, err
	}

	cat, err := s.store.Cats().GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}

	op := PendingOp{Kind: OpPhotosUpload, CatID: id, Folder: cat.StorageFolder}
	if err := s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		return st.PendingOps().Create(ctx, &op)
	}); err != nil {
		return Cat{}, err
	}

	folder, uploads, err := s.upload(ctx, id, cat.Name, files)
	if err != nil {
		s.cleanupUploads(ctx, uploads)
		s.dropOp(ctx, op.ID)
		return Cat{}, err
	}

	err = s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		for _, up := range uploads {
			p := photos.Photo{URL: up.URL, FileID: up.FileID, CatID: id}
			if err := st.Photos().Create(ctx, &p); err != nil {
				return err
			}
		}
		if err := st.Cats().SetStorageFolder(ctx, id, folder); err != nil {
			return err
		}
		return st.PendingOps().Delete(ctx, op.ID)
	})
	if err != nil {
		s.cleanupUploads(ctx, uploads)
		s.dropOp(ctx, op.ID)
		return Cat{}, err
	}

	return s.store.Cats().GetWithPhotos(ctx, id)
}

// Delete borra la ficha, sus filas de foto y la carpeta remota. Primero el
// marcador, después lo remoto (idempotente), al final lo local: si el
// proceso muere en el medio, Reconcile repite el borrado remoto y termina
// el local.
func (s *Service) Delete(ctx context.Context, id int64) error {
	cat, err := s.store.Cats().GetByID(ctx, id)
	if err != nil {
		return err
	}

	op := PendingOp{Kind: OpCatDelete, CatID: id, Folder: cat.StorageFolder}
	if err := s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		return st.PendingOps().Create(ctx, &op)
	}); err != nil {
		return err
	}

	if s.gw != nil && cat.StorageFolder != "" {
		if err := s.gw.DeleteFolder(ctx, cat.StorageFolder); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
			// El marcador queda: Reconcile reintenta en el próximo
			// arranque. Las filas locales siguen intactas.
			return err
		}
	}

	return s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		if err := st.Photos().DeleteByCat(ctx, id); err != nil {
			return err
		}
		if err := st.Cats().Delete(ctx, id); err != nil {
			return err
		}
		return st.PendingOps().Delete(ctx, op.ID)
	})
}

// DeletePhoto borra una foto puntual verificando que pertenezca al gato.
// Al borrar la última foto también cae la carpeta remota y se limpia el
// identificador en la ficha (la carpeta existe si y solo si hay fotos).
func (s *Service) DeletePhoto(ctx context.Context, catID, photoID int64) error {
	cat, err := s.store.Cats().GetByID(ctx, catID)
	if err != nil {
		return err
	}

	photo, err := s.store.Photos().GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.CatID != cat.ID {
		return fmt.Errorf("%w: photo %d does not belong to cat %d", ErrInvalidInput, photoID, catID)
	}

	if s.gw != nil && photo.FileID != "" {
		if err := s.gw.DeleteFile(ctx, photo.FileID); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
			return err
		}
	}

	existing, err := s.store.Photos().ListByCat(ctx, catID)
	if err != nil {
		return err
	}
	last := len(existing) == 1

	if err := s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		if err := st.Photos().Delete(ctx, photoID); err != nil {
			return err
		}
		if last {
			return st.Cats().SetStorageFolder(ctx, catID, "")
		}
		return nil
	}); err != nil {
		return err
	}

	if last && s.gw != nil && cat.StorageFolder != "" {
		if err := s.gw.DeleteFolder(ctx, cat.StorageFolder); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
			s.log.Warn("delete empty folder failed", map[string]any{
				"cat_id": catID, "folder": cat.StorageFolder, "error": err.Error(),
			})
		}
	}
	return nil
}

// Reconcile corre al arrancar el proceso y empuja hacia adelante cada
// saga que haya quedado marcada: huérfanos remotos de subidas cortadas,
// borrados a medio camino y renames pendientes.
func (s *Service) Reconcile(ctx context.Context) error {
	ops, err := s.store.PendingOps().List(ctx)
	if err != nil {
		return err
	}

	for _, op := range ops {
		var err error
		switch op.Kind {
		case OpPhotosUpload:
			err = s.reconcileUpload(ctx, op)
		case OpCatDelete:
			err = s.reconcileDelete(ctx, op)
		case OpFolderRename:
			err = s.reconcileRename(ctx, op)
		default:
			s.log.Warn("unknown pending op kind, dropping", map[string]any{"kind": string(op.Kind)})
			err = s.store.PendingOps().Delete(ctx, op.ID)
		}
		if err != nil {
			s.log.Error("reconcile failed, op kept", map[string]any{
				"op_id": op.ID, "kind": string(op.Kind), "cat_id": op.CatID, "error": err.Error(),
			})
		}
	}
	return nil
}

func (s *Service) reconcileUpload(ctx context.Context, op PendingOp) error {
	cat, err := s.store.Cats().GetWithPhotos(ctx, op.CatID)

	switch {
	case errors.Is(err, ErrNotFound):
		// El gato fue compensado o borrado: solo puede quedar basura
		// remota.
		if s.gw != nil {
			root, rerr := s.gw.EnsureRootFolder(ctx)
			if rerr != nil {
				return rerr
			}
			folder, rerr := s.gw.EnsureCatFolder(ctx, root, op.CatID, "")
			if rerr != nil {
				return rerr
			}
			if rerr := s.gw.DeleteFolder(ctx, folder); rerr != nil && !errors.Is(rerr, objectstore.ErrNotFound) {
				return rerr
			}
		}
		return s.store.PendingOps().Delete(ctx, op.ID)

	case err != nil:
		return err
	}

	if s.gw == nil {
		return s.store.PendingOps().Delete(ctx, op.ID)
	}

	root, err := s.gw.EnsureRootFolder(ctx)
	if err != nil {
		return err
	}
	folder, err := s.gw.EnsureCatFolder(ctx, root, cat.ID, cat.Name)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(cat.Photos))
	for _, p := range cat.Photos {
		known[p.FileID] = true
	}

	ids, err := s.gw.ListFileIDs(ctx, folder)
	if err != nil && !errors.Is(err, objectstore.ErrNotFound) {
		return err
	}
	for _, id := range ids {
		if known[id] {
			continue
		}
		if err := s.gw.DeleteFile(ctx, id); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
			return err
		}
		s.log.Info("removed orphan remote file", map[string]any{"cat_id": cat.ID, "file_id": id})
	}

	// Restablecer el invariante carpeta <-> fotos en ambas direcciones.
	if len(cat.Photos) > 0 && cat.StorageFolder == "" {
		if err := s.store.Cats().SetStorageFolder(ctx, cat.ID, folder); err != nil {
			return err
		}
	}
	if len(cat.Photos) == 0 {
		if err := s.gw.DeleteFolder(ctx, folder); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
			return err
		}
		if cat.StorageFolder != "" {
			if err := s.store.Cats().SetStorageFolder(ctx, cat.ID, ""); err != nil {
				return err
			}
		}
	}

	return s.store.PendingOps().Delete(ctx, op.ID)
}

func (s *Service) reconcileDelete(ctx context.Context, op PendingOp) error {
	if s.gw != nil && op.Folder != "" {
		if err := s.gw.DeleteFolder(ctx, op.Folder); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
			return err
		}
	}

	return s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		if err := st.Photos().DeleteByCat(ctx, op.CatID); err != nil {
			return err
		}
		if err := st.Cats().Delete(ctx, op.CatID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return st.PendingOps().Delete(ctx, op.ID)
	})
}

func (s *Service) reconcileRename(ctx context.Context, op PendingOp) error {
	cat, err := s.store.Cats().GetByID(ctx, op.CatID)
	if errors.Is(err, ErrNotFound) {
		return s.store.PendingOps().Delete(ctx, op.ID)
	}
	if err != nil {
		return err
	}
	if s.gw == nil || cat.StorageFolder == "" {
		return s.store.PendingOps().Delete(ctx, op.ID)
	}

	if err := s.renameWithRetry(ctx, cat.StorageFolder, op.Payload); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
		return err
	}
	return s.store.PendingOps().Delete(ctx, op.ID)
}

func (s *Service) upload(ctx context.Context, catID int64, name string, files []objectstore.File) (string, []objectstore.Upload, error) {
	root, err := s.gw.EnsureRootFolder(ctx)
	if err != nil {
		return "", nil, err
	}
	folder, err := s.gw.EnsureCatFolder(ctx, root, catID, name)
	if err != nil {
		return "", nil, err
	}
	uploads, err := s.gw.UploadFiles(ctx, folder, files)
	return folder, uploads, err
}

// compensateCreate deshace un alta con fotos fallida: objetos remotos ya
// subidos, filas y marcador. Si la compensación misma falla, el marcador
// queda para Reconcile.
func (s *Service) compensateCreate(ctx context.Context, catID, opID int64, uploads []objectstore.Upload) {
	s.cleanupUploads(ctx, uploads)

	err := s.store.InTx(ctx, func(ctx context.Context, st Store) error {
		if err := st.Photos().DeleteByCat(ctx, catID); err != nil {
			return err
		}
		if err := st.Cats().Delete(ctx, catID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return st.PendingOps().Delete(ctx, opID)
	})
	if err != nil {
		s.log.Error("create compensation failed, pending op kept", map[string]any{
			"cat_id": catID, "error": err.Error(),
		})
	}
}

func (s *Service) cleanupUploads(ctx context.Context, uploads []objectstore.Upload) {
	for _, up := range uploads {
		if err := s.gw.DeleteFile(ctx, up.FileID); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
			s.log.Warn("cleanup uploaded file failed", map[string]any{
				"file_id": up.FileID, "error": err.Error(),
			})
		}
	}
}

func (s *Service) dropOp(ctx context.Context, id int64) {
	if err := s.store.PendingOps().Delete(ctx, id); err != nil {
		s.log.Warn("drop pending op failed", map[string]any{"op_id": id, "error": err.Error()})
	}
}

func (s *Service) renameWithRetry(ctx context.Context, folder, newName string) error {
	b := retry.WithMaxRetries(renameRetries, retry.NewExponential(renameBackoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := s.gw.RenameFolder(ctx, folder, newName)
		if err == nil {
			return nil
		}
		// Solo las fallas de servicio son transitorias; NotFound y
		// Unauthorized no se arreglan reintentando.
		if errors.Is(err, objectstore.ErrService) {
			return retry.RetryableError(err)
		}
		return err
	})
}
