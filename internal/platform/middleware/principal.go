package middleware

import (
	"net/http"
	"strings"

	"organledger/pkg/domain"
)

// HeaderCallerPrincipal names the header carrying the caller principal.
// Mutating handlers pass its value to the coordinator, which decides whether
// the caller is authorized; an absent header is simply an empty principal
// and never authorizes anything.
const HeaderCallerPrincipal = "X-Caller-Principal"

// CallerPrincipal extracts the caller principal from the request headers.
func CallerPrincipal(r *http.Request) domain.Principal {
	return domain.Principal(strings.TrimSpace(r.Header.Get(HeaderCallerPrincipal)))
}
