package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/pricing"
)

type materialsViewData struct {
	baseViewData
	Catalog []materials.Material
}

func (s *server) handleAdminMaterialsForm(w http.ResponseWriter, r *http.Request) {
	state := s.sessions.Load(w, r)

	catalog, err := s.catalog.List(r.Context(), true)
	if err != nil {
		s.log.Error("list materials", zap.Error(err))
		http.Error(w, "failed to load materials", http.StatusInternalServerError)
		return
	}

	base := s.baseView(state)
	base.ErrorMessage = r.URL.Query().Get("error")
	base.SuccessMessage = r.URL.Query().Get("success")
	s.renderTemplate(w, http.StatusOK, "materials.html", materialsViewData{
		baseViewData: base,
		Catalog:      catalog,
	})
}

func (s *server) handleAdminMaterialsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	spoolCost, err := pricing.ParseAmount("spool_cost", r.FormValue("spool_cost"))
	if err == nil && spoolCost.IsNegative() {
		err = pricing.Invalid("spool_cost", "must be greater than or equal to 0")
	}
	if err != nil {
		http.Redirect(w, r, "/admin/materials?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	notes := strings.TrimSpace(r.FormValue("notes"))
	active := r.FormValue("active") == "1"

	if err := s.catalog.Update(r.Context(), id, spoolCost, notes, active); err != nil {
		if errors.Is(err, materials.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error("update material", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "failed to update material", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/materials?success=Material+updated", http.StatusSeeOther)
}
