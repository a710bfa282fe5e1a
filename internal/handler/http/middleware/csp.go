package middleware

import (
	"net/http"
	"strings"

	"market-news/pkg/security/csp"
)

// CSPConfig holds the Content-Security-Policy middleware settings.
type CSPConfig struct {
	// DefaultPolicy applies when no path prefix matches.
	DefaultPolicy *csp.Builder

	// PathPolicies maps path prefixes to policies. The longest matching
	// prefix wins.
	PathPolicies map[string]*csp.Builder

	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing.
	ReportOnly bool
}

// DefaultCSPConfig returns the strict policy everywhere except the Swagger UI.
func DefaultCSPConfig(reportOnly bool) CSPConfig {
	return CSPConfig{
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]*csp.Builder{
			"/swagger/": csp.SwaggerUIPolicy(),
		},
		ReportOnly: reportOnly,
	}
}

type cspRule struct {
	prefix string
	value  string
}

// CSP returns middleware that sets a Content-Security-Policy header chosen
// by request path. Policies are built once when the middleware is created.
func CSP(cfg CSPConfig) func(http.Handler) http.Handler {
	header := csp.HeaderEnforce
	if cfg.ReportOnly {
		header = csp.HeaderReportOnly
	}

	var def string
	if cfg.DefaultPolicy != nil {
		def = cfg.DefaultPolicy.Build()
	}
	rules := make([]cspRule, 0, len(cfg.PathPolicies))
	for prefix, p := range cfg.PathPolicies {
		rules = append(rules, cspRule{prefix: prefix, value: p.Build()})
	}

	selectPolicy := func(path string) string {
		best, value := -1, def
		for _, r := range rules {
			if strings.HasPrefix(path, r.prefix) && len(r.prefix) > best {
				best, value = len(r.prefix), r.value
			}
		}
		return value
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v := selectPolicy(r.URL.Path); v != "" {
				w.Header().Set(header, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
