// Package guard holds the admin key check and the host policies applied to
// every request.
package guard

import (
	"crypto/subtle"
	"net"
	"strings"
)

// Authorize reports whether the supplied admin key matches the configured one.
// An empty configured key never authorizes.
func Authorize(supplied, configured string) bool {
	if configured == "" {
		return false
	}
	key := strings.TrimSpace(supplied)
	return subtle.ConstantTimeCompare([]byte(key), []byte(configured)) == 1
}

// NormalizeHost lowercases a Host or X-Forwarded-Host value and strips the port.
// Only the first entry of a comma-separated forwarded list is used.
func NormalizeHost(raw string) string {
	host := strings.TrimSpace(raw)
	if i := strings.IndexByte(host, ','); i >= 0 {
		host = strings.TrimSpace(host[:i])
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.Trim(host, "[]"), ".")
	return strings.ToLower(host)
}

// MatchHost reports whether host matches pattern. A pattern of the form
// *.example.com matches any subdomain of example.com but not example.com itself.
func MatchHost(host, pattern string) bool {
	host = NormalizeHost(host)
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if host == "" || pattern == "" {
		return false
	}
	if suffix, ok := strings.CutPrefix(pattern, "*."); ok {
		return strings.HasSuffix(host, "."+suffix)
	}
	return host == NormalizeHost(pattern)
}

// ParseHostList splits a comma-separated ALLOWED_HOSTS value.
func ParseHostList(raw string) []string {
	var hosts []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			hosts = append(hosts, p)
		}
	}
	return hosts
}

// Decision is the outcome of applying a HostPolicy to a request.
type Decision int

const (
	Allow Decision = iota
	Deny
	Redirect
)

// HostPolicy is either an allow-list or a canonical-host redirect, never both.
// The zero value allows every host.
type HostPolicy struct {
	allowed         []string
	canonicalHost   string
	canonicalScheme string
}

// AllowList builds a policy that denies hosts matching none of patterns.
func AllowList(patterns []string) HostPolicy {
	return HostPolicy{allowed: patterns}
}

// Canonical builds a policy that redirects every other host to canonical.
// canonical may be a bare host ("www.example.com") or an origin
// ("https://www.example.com").
func Canonical(canonical string) HostPolicy {
	scheme := ""
	host := strings.TrimSpace(canonical)
	if s, rest, ok := strings.Cut(host, "://"); ok {
		scheme, host = strings.ToLower(s), rest
	}
	host = strings.TrimRight(host, "/")
	return HostPolicy{canonicalHost: host, canonicalScheme: scheme}
}

// Mode names the active policy for logging.
func (p HostPolicy) Mode() string {
	switch {
	case len(p.allowed) > 0:
		return "allow-list"
	case p.canonicalHost != "":
		return "canonical"
	default:
		return "off"
	}
}

// Decide applies the policy to the effective request host.
func (p HostPolicy) Decide(host string) Decision {
	if len(p.allowed) > 0 {
		for _, pattern := range p.allowed {
			if MatchHost(host, pattern) {
				return Allow
			}
		}
		return Deny
	}
	if p.canonicalHost != "" && NormalizeHost(host) != NormalizeHost(p.canonicalHost) {
		return Redirect
	}
	return Allow
}

// RedirectURL is the canonical location for a request. requestScheme is used
// when the canonical value carried no scheme; requestURI is path plus query.
func (p HostPolicy) RedirectURL(requestScheme, requestURI string) string {
	scheme := p.canonicalScheme
	if scheme == "" {
		scheme = requestScheme
	}
	if scheme == "" {
		scheme = "https"
	}
	if !strings.HasPrefix(requestURI, "/") {
		requestURI = "/" + requestURI
	}
	return scheme + "://" + p.canonicalHost + requestURI
}
