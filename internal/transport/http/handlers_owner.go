package httptransport

import (
	"net/http"

	"organledger/internal/platform/middleware"
	"organledger/pkg/domain"
	"organledger/pkg/platform/httputil"
)

type setOwnerRequest struct {
	NewOwner string `json:"new_owner"`
}

func (h *Handler) handleSetContractOwner(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerPrincipal(r)
	req, err := httputil.Decode[setOwnerRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.coord.SetContractOwner(r.Context(), caller, domain.Principal(req.NewOwner)); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]string{"owner": string(h.coord.Owner())})
}
