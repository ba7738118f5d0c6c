package audit

import (
	"net"
	"strings"
)

// UnknownIP valor cuando no se puede determinar la IP del cliente.
const UnknownIP = "unknown"

// ClientIP elige la IP del cliente en este orden: primer salto de X-Forwarded-For,
// X-Real-IP, dirección del socket, dirección que reporta el framework. Quita el prefijo ::ffff:.
func ClientIP(forwardedFor, realIP, remoteAddr, frameworkIP string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return normalizeIP(first)
		}
	}
	if ip := strings.TrimSpace(realIP); ip != "" {
		return normalizeIP(ip)
	}
	if remoteAddr != "" {
		host := remoteAddr
		if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
			host = h
		}
		if host != "" {
			return normalizeIP(host)
		}
	}
	if ip := strings.TrimSpace(frameworkIP); ip != "" {
		return normalizeIP(ip)
	}
	return UnknownIP
}

func normalizeIP(ip string) string {
	return strings.TrimPrefix(ip, "::ffff:")
}
