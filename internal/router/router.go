package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mem "vet-agenda/internal/adapters/docstore/memory"
	pg "vet-agenda/internal/adapters/docstore/postgres"
	"vet-agenda/internal/docstore"
	"vet-agenda/internal/middleware"
)

type Options struct {
	// Verifier puede ser nil (modo dev: el bearer token es el account id).
	Verifier middleware.AccountVerifier

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Use(middleware.AccountContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	var repo docstore.Repository

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		repo = pg.NewDocsRepo(db)
	} else {
		repo = mem.NewDocsRepo()
	}

	svc := docstore.NewService(repo)
	docstore.RegisterRoutes(r, svc)

	return r
}
