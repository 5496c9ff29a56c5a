package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/csv2json/internal/core"
)

// withClient adds the caller's IP and User-Agent to the context for
// service logging. RemoteAddr has already been rewritten by TrustedRealIP.
func withClient(r *http.Request) context.Context {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return core.ContextWithClient(r.Context(), ip, r.UserAgent())
}
