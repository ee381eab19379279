package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "animal-shelter/docs"
	mem "animal-shelter/internal/adapters/storage/memory"
	pg "animal-shelter/internal/adapters/storage/postgres"
	"animal-shelter/internal/domain/cats"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/objectstore"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: store ya armado (tests). Tiene prioridad sobre DB.
	Store cats.Store

	// Gateway remoto de fotos; nil = sin backend de archivos.
	Gateway objectstore.Gateway

	// PhotosDir habilita servir /photos/* desde disco (backend disk).
	PhotosDir string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.PhotosDir != "" {
		fs := http.StripPrefix("/photos/", http.FileServer(http.Dir(opts.PhotosDir)))
		r.Get("/photos/*", fs.ServeHTTP)
	}

	store := opts.Store
	if store == nil {
		// Si no te pasan DB explícita, intenta por env (para dev/handoff)
		db := opts.DB
		if db == nil {
			if dsn := os.Getenv("DB_DSN"); dsn != "" {
				opened, err := pg.Open(context.Background(), dsn)
				if err == nil {
					db = opened
				} else {
					log.Warn("postgres unavailable, falling back to memory", map[string]any{"error": err.Error()})
				}
			}
		}

		if db != nil {
			store = pg.NewStore(db)
		} else {
			store = mem.NewStore()
		}
	}

	svc := cats.NewService(store, opts.Gateway, log)

	// Retoma operaciones a medio camino de arranques anteriores.
	go func() {
		if err := svc.Reconcile(context.Background()); err != nil {
			log.Error("reconcile failed", map[string]any{"error": err.Error()})
		}
	}()

	cats.RegisterRoutes(r, svc)

	return r
}
