package cats

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"animal-shelter/internal/domain/photos"
	"animal-shelter/internal/ports/objectstore"
)

const (
	defaultListLimit = 20

	// maxRequestBytes acota el body multipart completo (10 fotos de 5 MiB
	// más los campos del form).
	maxRequestBytes = 64 << 20
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Get("/all", listCatsHandler(svc))
		cr.Post("/cat", createCatHandler(svc))

		cr.Get("/{catID}", getCatHandler(svc))
		cr.Put("/{catID}", updateCatHandler(svc))
		cr.Delete("/{catID}", deleteCatHandler(svc))

		cr.Post("/{catID}/only_photos", addPhotosHandler(svc))
		cr.Delete("/{catID}/photos/{photoID}", deletePhotoHandler(svc))
	})
}

type photoResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type catResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Age          *int      `json:"age"`
	Gender       string    `json:"gender"`
	About        string    `json:"about"`
	Sterilized   bool      `json:"sterilized"`
	RegisteredAt time.Time `json:"registered_at"`
	Views        int64     `json:"views"`
}

type catWithPhotosResponse struct {
	catResponse
	StorageFolder string          `json:"storage_folder,omitempty"`
	Photos        []photoResponse `json:"photos"`
}

type updateCatRequest struct {
	// Punteros para PUT parcial real: nil = no tocar.
	Name       *string `json:"name"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
	About      *string `json:"about"`
	Sterilized *bool   `json:"sterilized"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listCatsHandler godoc
// @Summary Listar gatos
// @Description Página de gatos en orden de alta. skip/limit por query.
// @Tags cats
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Tamaño de página" default(20)
// @Success 200 {array} catResponse
// @Router /cats/all [get]
func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip := queryInt(r, "skip", 0)
		limit := queryInt(r, "limit", defaultListLimit)

		items, err := svc.List(r.Context(), skip, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]catResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCatResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getCatHandler godoc
// @Summary Ficha de un gato
// @Description Devuelve la ficha con sus fotos y suma una vista.
// @Tags cats
// @Produce json
// @Param catID path int true "ID del gato"
// @Success 200 {object} catWithPhotosResponse
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID} [get]
func getCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "catID")
		if !ok {
			return
		}

		c, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatWithPhotosResponse(c))
	}
}

// createCatHandler godoc
// @Summary Crear gato
// @Description Form multipart con los campos de la ficha y adjuntos
// @Description opcionales en "files" (jpg/jpeg/png/gif, máx 10, 5 MiB c/u).
// @Description Las fotos pueden agregarse después vía only_photos.
// @Tags cats
// @Accept mpfd
// @Produce json
// @Param name formData string false "Nombre"
// @Param age formData int false "Edad"
// @Param gender formData string true "male o female"
// @Param about formData string false "Texto libre"
// @Param sterilized formData bool true "Esterilizado"
// @Param files formData file false "Fotos"
// @Success 201 {object} catWithPhotosResponse
// @Failure 400 {string} string "campos o archivos inválidos"
// @Failure 502 {string} string "object store failure"
// @Router /cats/cat [post]
func createCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, files, ok := parseCatForm(w, r)
		if !ok {
			return
		}

		c, err := svc.Create(r.Context(), in, files)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCatWithPhotosResponse(c))
	}
}

// addPhotosHandler godoc
// @Summary Agregar fotos a un gato
// @Tags cats
// @Accept mpfd
// @Produce json
// @Param catID path int true "ID del gato"
// @Param files formData file true "Fotos"
// @Success 200 {object} catWithPhotosResponse
// @Failure 400 {string} string "archivos inválidos"
// @Failure 404 {string} string "cat not found"
// @Router /cats/{catID}/only_photos [post]
func addPhotosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "catID")
		if !ok {
			return
		}

		files, ok := parseFiles(w, r)
		if !ok {
			return
		}

		c, err := svc.AddPhotos(r.Context(), id, files)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatWithPhotosResponse(c))
	}
}

// updateCatHandler godoc
// @Summary Actualizar gato
// @Description PUT parcial: solo se tocan los campos presentes en el JSON.
// @Tags cats
// @Accept json
// @Produce json
// @Param catID path int true "ID del gato"
// @Param payload body updateCatRequest true "Campos a actualizar"
// @Success 200 {object} catWithPhotosResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "cat not found"
// @Failure 502 {string} string "remote rename failed"
// @Router /cats/{catID} [put]
func updateCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "catID")
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateCatRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), id, UpdateInput{
			Name:       req.Name,
			Age:        req.Age,
			Gender:     req.Gender,
			About:      req.About,
			Sterilized: req.Sterilized,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCatWithPhotosResponse(c))
	}
}

// deleteCatHandler godoc
// @Summary Borrar gato
// @Description Borra la ficha, sus filas de foto y los archivos remotos.
// @Tags cats
// @Produce json
// @Param catID path int true "ID del gato"
// @Success 200 {object} messageResponse
// @Failure 404 {string} string "cat not found"
// @Failure 502 {string} string "object store failure"
// @Router /cats/{catID} [delete]
func deleteCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "catID")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{
			Message: "cat " + strconv.FormatInt(id, 10) + " and all related photos deleted",
		})
	}
}

// deletePhotoHandler godoc
// @Summary Borrar una foto
// @Description Verifica que la foto pertenezca al gato antes de borrar.
// @Tags cats
// @Produce json
// @Param catID path int true "ID del gato"
// @Param photoID path int true "ID de la foto"
// @Success 200 {object} messageResponse
// @Failure 400 {string} string "photo does not belong to cat"
// @Failure 404 {string} string "cat or photo not found"
// @Router /cats/{catID}/photos/{photoID} [delete]
func deletePhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catID, ok := pathID(w, r, "catID")
		if !ok {
			return
		}
		photoID, ok := pathID(w, r, "photoID")
		if !ok {
			return
		}

		if err := svc.DeletePhoto(r.Context(), catID, photoID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "photo deleted"})
	}
}

func parseCatForm(w http.ResponseWriter, r *http.Request) (CreateInput, []objectstore.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return CreateInput{}, nil, false
	}

	in := CreateInput{
		Name:   r.FormValue("name"),
		Gender: r.FormValue("gender"),
		About:  r.FormValue("about"),
	}

	if v := r.FormValue("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "age must be an integer", http.StatusBadRequest)
			return CreateInput{}, nil, false
		}
		in.Age = &age
	}

	sterilized, err := strconv.ParseBool(r.FormValue("sterilized"))
	if err != nil {
		http.Error(w, "sterilized must be true or false", http.StatusBadRequest)
		return CreateInput{}, nil, false
	}
	in.Sterilized = sterilized

	files, ok := readFiles(w, r)
	if !ok {
		return CreateInput{}, nil, false
	}
	return in, files, true
}

func parseFiles(w http.ResponseWriter, r *http.Request) ([]objectstore.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return nil, false
	}
	return readFiles(w, r)
}

func readFiles(w http.ResponseWriter, r *http.Request) ([]objectstore.File, bool) {
	if r.MultipartForm == nil {
		return nil, true
	}

	headers := r.MultipartForm.File["files"]
	files := make([]objectstore.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, "cannot read attachment "+fh.Filename, http.StatusBadRequest)
			return nil, false
		}

		// Un byte más que el máximo para que la validación detecte el
		// exceso sin cargar archivos arbitrariamente grandes.
		content, err := io.ReadAll(io.LimitReader(f, objectstore.MaxFileSize+1))
		_ = f.Close()
		if err != nil {
			http.Error(w, "cannot read attachment "+fh.Filename, http.StatusBadRequest)
			return nil, false
		}

		files = append(files, objectstore.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return files, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:           c.ID,
		Name:         c.Name,
		Age:          c.Age,
		Gender:       string(c.Gender),
		About:        c.About,
		Sterilized:   c.Sterilized,
		RegisteredAt: c.RegisteredAt,
		Views:        c.Views,
	}
}

func toCatWithPhotosResponse(c Cat) catWithPhotosResponse {
	out := catWithPhotosResponse{
		catResponse:   toCatResponse(c),
		StorageFolder: c.StorageFolder,
		Photos:        make([]photoResponse, 0, len(c.Photos)),
	}
	for _, p := range c.Photos {
		out.Photos = append(out.Photos, photoResponse{ID: p.ID, URL: p.URL})
	}
	return out
}

// writeError mapea la taxonomía de errores del dominio a HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cat not found", http.StatusNotFound)
	case errors.Is(err, photos.ErrNotFound):
		http.Error(w, "photo not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, objectstore.ErrInvalidFile):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, objectstore.ErrUnauthorized):
		http.Error(w, "object store credentials rejected", http.StatusUnauthorized)
	case errors.Is(err, objectstore.ErrNotFound), errors.Is(err, objectstore.ErrService):
		http.Error(w, "object store failure", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
