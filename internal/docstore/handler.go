package docstore

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vet-agenda/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/accounts/{accountID}/{collection}", func(cr chi.Router) {
		cr.Get("/", listDocsHandler(svc))
		cr.Post("/", createDocHandler(svc))

		cr.Get("/{docID}", getDocHandler(svc))
		cr.Patch("/{docID}", patchDocHandler(svc))
		cr.Delete("/{docID}", deleteDocHandler(svc))
	})
}

// scopeFrom valida colección soportada y que el account autenticado sea el
// mismo del path. Retorna ok=false si ya respondió el error.
func scopeFrom(w http.ResponseWriter, r *http.Request) (Scope, bool) {
	acct, ok := middleware.GetAccount(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Scope{}, false
	}

	pathAcct := strings.TrimSpace(chi.URLParam(r, "accountID"))
	if pathAcct == "" || pathAcct != acct {
		http.Error(w, "forbidden", http.StatusForbidden)
		return Scope{}, false
	}

	coll := strings.TrimSpace(chi.URLParam(r, "collection"))
	if !Collections[coll] {
		http.Error(w, "unknown collection", http.StatusNotFound)
		return Scope{}, false
	}

	return Scope{AccountID: pathAcct, Collection: coll}, true
}

func listDocsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFrom(w, r)
		if !ok {
			return
		}

		filter := ListFilter{
			Order: strings.TrimSpace(r.URL.Query().Get("order")),
			Field: strings.TrimSpace(r.URL.Query().Get("field")),
			Value: strings.TrimSpace(r.URL.Query().Get("value")),
		}

		docs, err := svc.List(r.Context(), scope, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]map[string]any, 0, len(docs))
		for _, d := range docs {
			out = append(out, d.Body())
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getDocHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFrom(w, r)
		if !ok {
			return
		}

		d, err := svc.Get(r.Context(), scope, chi.URLParam(r, "docID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Body())
	}
}

func createDocHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFrom(w, r)
		if !ok {
			return
		}

		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), scope, fields)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, d.Body())
	}
}

func patchDocHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFrom(w, r)
		if !ok {
			return
		}

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Patch(r.Context(), scope, chi.URLParam(r, "docID"), patch)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Body())
	}
}

func deleteDocHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFrom(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), scope, chi.URLParam(r, "docID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
