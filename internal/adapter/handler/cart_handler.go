package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/minimart/backend/internal/core/domain"
	"github.com/minimart/backend/internal/core/service"
)

type CartHandler struct {
	svc *service.CartService
	log *zap.Logger
}

func NewCartHandler(svc *service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

type productDetails struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type cartLineResponse struct {
	ProductID      string         `json:"product_id"`
	Quantity       int            `json:"quantity"`
	ProductDetails productDetails `json:"product_details"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	lines, err := h.svc.GetCart(r.Context(), identity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	out := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, cartLineResponse{
			ProductID: line.ProductRef,
			Quantity:  line.Quantity,
			ProductDetails: productDetails{
				Name:        line.Product.Name,
				Price:       line.Product.Price,
				Description: line.Product.Description,
			},
		})
	}

	writeJSON(w, http.StatusOK, out)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type addItemResponse struct {
	ID        int64  `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	rec, err := h.svc.AddItem(r.Context(), identity, req.ProductID, req.Quantity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addItemResponse{
		ID:        rec.ID,
		ProductID: rec.ProductRef,
		Quantity:  rec.Quantity,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), identity, id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "item removed"})
}

func (h *CartHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "cart item not found")
	default:
		h.log.Error("cart request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
