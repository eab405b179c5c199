package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"organledger/internal/platform/middleware"
	"organledger/pkg/domain"
	"organledger/pkg/platform/httputil"
)

type addCourierRequest struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (h *Handler) handleAddCourier(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	req, err := httputil.Decode[addCourierRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.coord.AddCourier(r.Context(), caller, domain.CourierID(req.ID), req.Name, req.Contact); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"courier_id": req.ID})
}

func (h *Handler) handleDeactivateCourier(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	id, err := domain.ParseCourierID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.coord.DeactivateCourier(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"courier_id": uint64(id)})
}

func (h *Handler) handleGetCourier(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCourierID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := h.coord.GetCourier(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, c)
}

type createTransportRequest struct {
	MatchID               uint64 `json:"match_id"`
	OrganType             string `json:"organ_type"`
	SourceHospitalID      uint64 `json:"source_hospital_id"`
	DestinationHospitalID uint64 `json:"destination_hospital_id"`
	CourierID             uint64 `json:"courier_id"`
}

func (h *Handler) handleCreateTransport(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	req, err := httputil.Decode[createTransportRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.coord.CreateTransport(r.Context(), caller,
		domain.MatchID(req.MatchID), req.OrganType,
		domain.HospitalID(req.SourceHospitalID), domain.HospitalID(req.DestinationHospitalID),
		domain.CourierID(req.CourierID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"transport_id": uint64(id)})
}

type updateTransportStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *Handler) handleUpdateTransportStatus(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	id, err := domain.ParseTransportID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := httputil.Decode[updateTransportStatusRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.coord.UpdateTransportStatus(r.Context(), caller, id, req.Status, req.Notes); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"transport_id": uint64(id)})
}

func (h *Handler) handleGetTransport(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTransportID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := h.coord.GetTransport(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, t)
}
