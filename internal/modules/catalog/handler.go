package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler exposes catalog HTTP endpoints. The responses keep the wire format
// of the original Express server, including its operator-facing messages.
type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/items", h.getCatalog)
	r.Post("/api/items", h.replaceCatalog)
	r.Patch("/api/items/availability", h.setAvailability)
	r.Post("/api/shop-info", h.updateShopInfo)
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetCatalog(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao ler dados dos itens."})
		return
	}
	respond(w, http.StatusOK, doc)
}

func (h *Handler) replaceCatalog(w http.ResponseWriter, r *http.Request) {
	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.ReplaceCatalog(r.Context(), &doc); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao salvar dados dos itens."})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Disponibilidade dos itens atualizada com sucesso!"})
}

// SetAvailabilityRequest carries the checkbox states from the admin page.
type SetAvailabilityRequest struct {
	Toggles []Toggle `json:"toggles" validate:"required,dive"`
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request) {
	var req SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	doc, err := h.service.SetAvailability(r.Context(), req.Toggles)
	if err != nil {
		msg := "Erro ao salvar dados dos itens."
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt) {
			msg = "Erro ao ler dados dos itens."
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, doc)
}

func (h *Handler) updateShopInfo(w http.ResponseWriter, r *http.Request) {
	var update ShopInfoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.UpdateShopInfo(r.Context(), update); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao salvar o status da loja."})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Status da loja atualizado com sucesso!"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
