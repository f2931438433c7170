package utils

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP returns the address of the client that issued r, for log fields.
// The first X-Forwarded-For hop wins, then X-Real-IP, then RemoteAddr without its port.
// Header values that do not parse as an IP are skipped.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
