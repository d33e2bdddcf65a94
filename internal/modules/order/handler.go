package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints, wire-compatible with the original
// Express server.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/orders", h.placeOrder)
	r.Get("/api/orders", h.listOrders)
	r.Get("/api/orders/report", h.report)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var o Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	stored, err := h.service.PlaceOrder(r.Context(), &o)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao salvar pedido."})
		return
	}
	respond(w, http.StatusCreated, map[string]any{
		"message": "Pedido registrado com sucesso!",
		"order":   stored,
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao ler dados dos pedidos."})
		return
	}
	respond(w, http.StatusOK, orders)
}

// reportResponse adds the fixed-point pt-BR display strings the admin page
// shows; the aggregation itself deals in raw numbers only.
type reportResponse struct {
	Groups            []reportGroup `json:"groups"`
	GrandTotal        float64       `json:"grandTotal"`
	GrandTotalDisplay string        `json:"grandTotalDisplay"`
}

type reportGroup struct {
	Key          string  `json:"key"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"totalDisplay"`
	Orders       []Order `json:"orders"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	granularity, err := ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	report, err := h.service.Report(r.Context(), granularity)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao ler dados dos pedidos."})
		return
	}

	resp := reportResponse{
		Groups:            make([]reportGroup, len(report.Groups)),
		GrandTotal:        report.GrandTotal,
		GrandTotalDisplay: displayAmount(report.GrandTotal),
	}
	for i, g := range report.Groups {
		resp.Groups[i] = reportGroup{
			Key:          g.Key,
			Total:        g.Total,
			TotalDisplay: displayAmount(g.Total),
			Orders:       g.Orders,
		}
	}
	respond(w, http.StatusOK, resp)
}

// displayAmount renders a total with exactly two decimals and the pt-BR
// decimal comma, e.g. 35.5 -> "35,50".
func displayAmount(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', 2, 64), ".", ",")
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
