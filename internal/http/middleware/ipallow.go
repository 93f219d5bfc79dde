package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// IPAllowlist restricts an endpoint to the configured source addresses.
// Entries are exact IPs or CIDR blocks; an empty list allows everything.
func IPAllowlist(entries []string, log zerolog.Logger) gin.HandlerFunc {
	var addrs []netip.Addr
	var prefixes []netip.Prefix

	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				log.Warn().Str("entry", entry).Msg("skipping invalid allowlist CIDR")
				continue
			}
			prefixes = append(prefixes, prefix)
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			log.Warn().Str("entry", entry).Msg("skipping invalid allowlist address")
			continue
		}
		addrs = append(addrs, addr)
	}

	open := len(addrs) == 0 && len(prefixes) == 0

	return func(c *gin.Context) {
		if open {
			c.Next()
			return
		}

		client, err := netip.ParseAddr(c.ClientIP())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "IP address not allowed"})
			return
		}

		for _, addr := range addrs {
			if addr == client {
				c.Next()
				return
			}
		}
		for _, prefix := range prefixes {
			if prefix.Contains(client) {
				c.Next()
				return
			}
		}

		log.Warn().Str("ip", client.String()).Msg("rejected ingestion from unlisted address")
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "IP address not allowed"})
	}
}
