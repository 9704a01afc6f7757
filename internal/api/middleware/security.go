package middleware

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersConfig controls the hardening headers applied to every
// response.
type SecurityHeadersConfig struct {
	// IsDevelopment relaxes the CSP for the Vite dev server and skips HSTS.
	IsDevelopment bool
	// ExtraCSP overrides or adds CSP directives, e.g. to allow an external
	// avatar or tile host.
	ExtraCSP map[string]string
}

func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{}
}

// SecurityHeaders hardens dashboard responses. The frontend is a
// same-origin SPA: every request it makes goes to /api/v1 on the host that
// served it, so the CSP stays locked to 'self'.
func SecurityHeaders(cfg SecurityHeadersConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", buildCSP(cfg))
		if !cfg.IsDevelopment {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Permissions-Policy", permissionsPolicy)
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("Cross-Origin-Resource-Policy", "same-origin")
		c.Next()
	}
}

// cspOrder fixes the emission order so the header value is stable across
// restarts and easy to diff in logs.
var cspOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"object-src",
	"base-uri",
	"form-action",
}

func buildCSP(cfg SecurityHeadersConfig) string {
	directives := map[string]string{
		"default-src": "'self'",
		"script-src":  "'self'",
		// the chart components inject inline style attributes
		"style-src": "'self' 'unsafe-inline'",
		"img-src":   "'self' data:",
		"font-src":  "'self'",
		// events, auth and notifications are all same-origin API calls
		"connect-src":     "'self'",
		"frame-ancestors": "'none'",
		"object-src":      "'none'",
		"base-uri":        "'self'",
		"form-action":     "'self'",
	}

	if cfg.IsDevelopment {
		// Vite serves eval'd modules and pushes HMR updates over a websocket.
		directives["script-src"] = "'self' 'unsafe-inline' 'unsafe-eval'"
		directives["connect-src"] = "'self' ws: wss:"
	}

	for directive, value := range cfg.ExtraCSP {
		directives[directive] = value
	}

	parts := make([]string, 0, len(directives))
	for _, directive := range cspOrder {
		if value, ok := directives[directive]; ok {
			parts = append(parts, directive+" "+value)
			delete(directives, directive)
		}
	}

	// Custom directives outside the canonical set go last, sorted.
	extras := make([]string, 0, len(directives))
	for directive, value := range directives {
		extras = append(extras, directive+" "+value)
	}
	sort.Strings(extras)
	parts = append(parts, extras...)

	return strings.Join(parts, "; ")
}

// permissionsPolicy disables browser features a monitoring dashboard never
// uses.
const permissionsPolicy = "accelerometer=(), camera=(), geolocation=(), " +
	"gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()"
