package main

import (
	"database/sql"
	"net/http"

	"vet-agenda/internal/adapters/docstore/postgres"
	"vet-agenda/internal/config"
	"vet-agenda/internal/platform/logger"
	"vet-agenda/internal/router"
)

// docstored es el document store de referencia del agenda: expone
// accounts/{accountId}/{events,contacts,subjects} con merge-patch y
// timestamps de servidor. Los clientes móviles sincronizan contra él.
func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid config", map[string]any{"error": err.Error()})
		return
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"error": err.Error()})
			return
		}
		defer db.Close()
	}

	r := router.NewRouter(router.Options{Verifier: nil, DB: db}) // sin verifier para modo dev

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info("starting docstored", map[string]any{"addr": cfg.Addr, "postgres": db != nil})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
	}
}
