package extract

import (
	"net/url"
	"strings"
)

// DomainFilter drops rows whose host is a listed domain or a subdomain of one.
type DomainFilter struct {
	domains map[string]bool
}

// NewDomainFilter returns a filter for domains. A nil or empty list keeps
// every row.
func NewDomainFilter(domains []string) *DomainFilter {
	f := &DomainFilter{domains: make(map[string]bool, len(domains))}
	for _, d := range domains {
		d = strings.ToLower(strings.Trim(strings.TrimSpace(d), "."))
		if d != "" {
			f.domains[d] = true
		}
	}
	return f
}

// Excluded reports whether rawURL should be left out of the report.
func (f *DomainFilter) Excluded(rawURL string) bool {
	if f == nil || len(f.domains) == 0 {
		return false
	}
	host := extractDomain(rawURL)
	for host != "" {
		if f.domains[host] {
			return true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return false
}

// extractDomain pulls the lowercase hostname from a URL string.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
