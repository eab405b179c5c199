package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"organledger/internal/platform/middleware"
	"organledger/pkg/domain"
	"organledger/pkg/platform/httputil"
)

type registerRecipientRequest struct {
	OwnerIdentity string `json:"owner_identity"`
	Name          string `json:"name"`
	BloodType     string `json:"blood_type"`
	NeededOrgan   string `json:"needed_organ"`
	Urgency       int    `json:"urgency"`
	HospitalID    uint64 `json:"hospital_id"`
}

func (h *Handler) handleRegisterRecipient(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	req, err := httputil.Decode[registerRecipientRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.coord.RegisterRecipient(r.Context(), caller, domain.Principal(req.OwnerIdentity), req.Name, req.BloodType, req.NeededOrgan, req.Urgency, domain.HospitalID(req.HospitalID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"recipient_id": uint64(id)})
}

type updateUrgencyRequest struct {
	Urgency int `json:"urgency"`
}

func (h *Handler) handleUpdateUrgency(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	id, err := domain.ParseRecipientID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := httputil.Decode[updateUrgencyRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.coord.UpdateUrgency(r.Context(), caller, id, req.Urgency); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"recipient_id": uint64(id)})
}

func (h *Handler) handleDeactivateRecipient(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	id, err := domain.ParseRecipientID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.coord.DeactivateRecipient(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"recipient_id": uint64(id)})
}

func (h *Handler) handleGetRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseRecipientID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.coord.GetRecipient(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, rec)
}

type addHospitalRequest struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *Handler) handleAddHospital(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	req, err := httputil.Decode[addHospitalRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.coord.AddHospital(r.Context(), caller, domain.HospitalID(req.ID), req.Name, req.Location); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]uint64{"hospital_id": req.ID})
}

func (h *Handler) handleGetHospital(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseHospitalID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	hosp, err := h.coord.GetHospital(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, hosp)
}
