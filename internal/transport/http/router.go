// Package httptransport exposes the coordinator over HTTP. Handlers stay
// thin: decode, delegate to the coordinator, encode the transaction-result
// envelope. Authorization decisions live entirely in the coordinator.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"organledger/internal/coordinator"
	"organledger/internal/platform/metrics"
	"organledger/internal/platform/middleware"
)

// Handler wires the registry endpoints to the coordinator.
type Handler struct {
	coord  *coordinator.Coordinator
	logger *slog.Logger
}

// NewHandler constructs the HTTP handler.
func NewHandler(coord *coordinator.Coordinator, logger *slog.Logger) *Handler {
	return &Handler{coord: coord, logger: logger}
}

// NewRouter mounts every endpoint behind the shared middleware chain.
func NewRouter(h *Handler, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(m))

	r.Post("/matches", h.handleCreateMatch)
	r.Post("/matches/{id}/accept", h.handleAcceptMatch)
	r.Post("/matches/{id}/reject", h.handleRejectMatch)
	r.Post("/matches/{id}/complete", h.handleCompleteMatch)
	r.Get("/matches/{id}", h.handleGetMatch)

	r.Post("/recipients", h.handleRegisterRecipient)
	r.Post("/recipients/{id}/urgency", h.handleUpdateUrgency)
	r.Post("/recipients/{id}/deactivate", h.handleDeactivateRecipient)
	r.Get("/recipients/{id}", h.handleGetRecipient)

	r.Post("/hospitals", h.handleAddHospital)
	r.Get("/hospitals/{id}", h.handleGetHospital)

	r.Post("/couriers", h.handleAddCourier)
	r.Post("/couriers/{id}/deactivate", h.handleDeactivateCourier)
	r.Get("/couriers/{id}", h.handleGetCourier)

	r.Post("/transports", h.handleCreateTransport)
	r.Post("/transports/{id}/status", h.handleUpdateTransportStatus)
	r.Get("/transports/{id}", h.handleGetTransport)

	r.Post("/owner", h.handleSetContractOwner)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
