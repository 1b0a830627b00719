package util

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the caller IP used for rate-limit keys. The forwarded
// header is only honored when the direct peer is a private address, which
// covers the in-cluster gateway deployment.
func ClientIP(r *http.Request) string {
	remote := remoteIP(r.RemoteAddr)
	if remote == nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	if remote.IsLoopback() || remote.IsPrivate() {
		if forwarded := firstForwarded(r.Header.Get("X-Forwarded-For")); forwarded != nil {
			return forwarded.String()
		}
	}
	return remote.String()
}

func firstForwarded(raw string) net.IP {
	for _, part := range strings.Split(raw, ",") {
		if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
			return ip
		}
	}
	return nil
}

func remoteIP(addr string) net.IP {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return net.ParseIP(addr)
}
