package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/minimart/backend/internal/core/domain"
	"github.com/minimart/backend/internal/core/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
	log *zap.Logger
}

func NewCatalogHandler(svc *service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

type productRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func toProductResponse(entry domain.CatalogEntry) productResponse {
	return productResponse{
		ID:          entry.ID,
		Name:        entry.Name,
		Price:       entry.Price,
		Description: entry.Description,
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	entries, err := h.svc.List(r.Context(), identity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	out := make([]productResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toProductResponse(entry))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := domain.CatalogEntry{}
	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Price != nil {
		entry.Price = *req.Price
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	created, err := h.svc.Create(r.Context(), identity, entry)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := domain.CatalogPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}

	updated, err := h.svc.Update(r.Context(), identity, r.PathValue("id"), patch)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	if err := h.svc.Delete(r.Context(), identity, r.PathValue("id")); err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "product deleted"})
}

func (h *CatalogHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "access forbidden, admins only")
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrInvalidPrice), errors.Is(err, service.ErrMissingName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("catalog request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
