package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", HeaderCorrelationID}
)

// CORS lets the storefront frontend, served from another origin, call the API.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   corsMethods,
		AllowedHeaders:   corsHeaders,
		ExposedHeaders:   []string{HeaderCorrelationID},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// CORSHeaders computes the response headers for callers outside net/http,
// such as the API Gateway proxy. The result is empty when origin is not allowed.
func CORSHeaders(allowedOrigins []string, origin string) map[string]string {
	allow := ""
	for _, o := range allowedOrigins {
		if o == "*" {
			allow = "*"
			break
		}
		if origin != "" && strings.EqualFold(o, origin) {
			allow = origin
		}
	}
	if allow == "" {
		return map[string]string{}
	}
	return map[string]string{
		"Access-Control-Allow-Origin":   allow,
		"Access-Control-Allow-Methods":  strings.Join(corsMethods, ", "),
		"Access-Control-Allow-Headers":  strings.Join(corsHeaders, ", "),
		"Access-Control-Expose-Headers": HeaderCorrelationID,
	}
}
