package httptransport

import (
	"net/http"

	"organledger/internal/coordinator"
	dErrors "organledger/pkg/domain-errors"
	"organledger/pkg/platform/httputil"
)

// The wire envelope mirrors the ledger transaction result: committed calls
// carry ok plus a value, rejected calls carry ok=false plus the stable
// numeric failure code.
type okEnvelope struct {
	OK    bool `json:"ok"`
	Value any  `json:"value"`
}

type errEnvelope struct {
	OK    bool   `json:"ok"`
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func writeOK(w http.ResponseWriter, value any) {
	httputil.WriteJSON(w, http.StatusOK, okEnvelope{OK: true, Value: value})
}

func writeError(w http.ResponseWriter, err error) {
	code := coordinator.FailureCodeOf(err)
	msg := dErrors.MessageOf(err)
	if code == coordinator.FailureInternal {
		// Internal details stay in the logs.
		msg = "internal error"
	}
	httputil.WriteJSON(w, httpStatus(code), errEnvelope{OK: false, Code: int(code), Error: msg})
}

func httpStatus(code coordinator.FailureCode) int {
	switch code {
	case coordinator.FailureUnauthorized:
		return http.StatusForbidden
	case coordinator.FailureNotFound:
		return http.StatusNotFound
	case coordinator.FailureInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
