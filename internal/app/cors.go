package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether an Origin header value matches any of the
// configured patterns. Patterns match against the "host[:port]" portion and
// may carry a leading "*." subdomain wildcard or a trailing ":*" port
// wildcard, so "*.subkart.app" covers the storefront and the admin panel.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		if matchOriginPattern(pattern, host) {
			return true
		}
	}
	return false
}

func matchOriginPattern(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	default:
		return false
	}
}
