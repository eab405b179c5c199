package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"organledger/internal/platform/middleware"
	"organledger/pkg/domain"
	"organledger/pkg/platform/httputil"
)

type createMatchRequest struct {
	DonorID            uint64 `json:"donor_id"`
	RecipientID        uint64 `json:"recipient_id"`
	OrganType          string `json:"organ_type"`
	CompatibilityScore int    `json:"compatibility_score"`
}

func (h *Handler) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	req, err := httputil.Decode[createMatchRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.coord.CreateMatch(r.Context(), caller, req.DonorID, domain.RecipientID(req.RecipientID), req.OrganType, req.CompatibilityScore)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"match_id": uint64(id)})
}

func (h *Handler) matchTransition(w http.ResponseWriter, r *http.Request, apply func(id domain.MatchID) error) {
	id, err := domain.ParseMatchID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := apply(id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"match_id": uint64(id)})
}

func (h *Handler) handleAcceptMatch(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	h.matchTransition(w, r, func(id domain.MatchID) error {
		return h.coord.AcceptMatch(r.Context(), caller, id)
	})
}

func (h *Handler) handleRejectMatch(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	h.matchTransition(w, r, func(id domain.MatchID) error {
		return h.coord.RejectMatch(r.Context(), caller, id)
	})
}

func (h *Handler) handleCompleteMatch(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	h.matchTransition(w, r, func(id domain.MatchID) error {
		return h.coord.CompleteMatch(r.Context(), caller, id)
	})
}

func (h *Handler) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMatchID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := h.coord.GetMatch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, m)
}
