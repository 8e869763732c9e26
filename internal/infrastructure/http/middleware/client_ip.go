package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"
)

// ClientIPExtractor decides which address identifies a client for rate limiting.
// Without trusted proxies the socket address is used and forwarding headers are ignored.
// With trusted proxies X-Forwarded-For is honored only for hops inside those ranges.
// Entries that are not CIDR ranges are skipped; config validation rejects them earlier.
func ClientIPExtractor(trustedProxies []string) echo.IPExtractor {
	var options []echo.TrustOption
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			continue
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	if len(options) == 0 {
		return echo.ExtractIPDirect()
	}

	options = append(options,
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	)
	return echo.ExtractIPFromXFFHeader(options...)
}
