package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Requested-With"
	corsMaxAge       = "600"
)

// OriginPolicy decides which browser origins may call the API. It is an
// access-control policy for well-behaved browsers, not a security
// boundary: any non-browser client can omit or forge the Origin header.
type OriginPolicy struct {
	origins  map[string]struct{}
	suffixes []string
}

// NewOriginPolicy builds a policy from exact origins and trusted host
// suffixes such as ".vercel.app".
func NewOriginPolicy(origins, suffixes []string) *OriginPolicy {
	p := &OriginPolicy{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		p.origins[strings.TrimSuffix(strings.ToLower(o), "/")] = struct{}{}
	}
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		p.suffixes = append(p.suffixes, s)
	}
	return p
}

// Allowed reports whether origin is admitted. Suffix matches apply only to
// https origins so a plain-http lookalike is refused.
func (p *OriginPolicy) Allowed(origin string) bool {
	origin = strings.ToLower(origin)
	if _, ok := p.origins[origin]; ok {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return false
	}
	host := u.Hostname()
	for _, s := range p.suffixes {
		if strings.HasSuffix(host, s) && len(host) > len(s) {
			return true
		}
	}
	return false
}

// CORS applies the origin policy. Requests without an Origin header are
// admitted untouched. Pre-flights from unknown origins are refused with
// 403; other requests from unknown origins proceed without permissive
// headers, leaving the browser to block the response.
func (m *Middleware) CORS(policy *OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			allowed := policy.Allowed(origin)
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if !allowed {
				if preflight {
					m.log.Debug().Str("origin", origin).Msg("pre-flight from disallowed origin")
					writeJSON(w, http.StatusForbidden, "Origin not allowed")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")

			if preflight {
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Max-Age", corsMaxAge)
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
