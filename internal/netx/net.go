// Package netx holds small network helpers shared by the transport layer.
package netx

import (
	"net"
	"strings"
)

// ClientIP picks the caller address recorded for rate limiting and audit.
// The first hop of an X-Forwarded-For value wins; otherwise the host part of
// remote is used. An empty string means neither was known.
func ClientIP(forwardedFor string, remote net.Addr) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if remote == nil {
		return ""
	}
	addr := remote.String()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
