package server

import (
	"net/http"

	"resumeaudit/internal/observability"
)

// Handler builds the routed, instrumented handler
func (s *Server) Handler(om *observability.ObservabilityManager) http.Handler {
	return om.HTTPMiddleware()(s.setupRoutes(om))
}

// setupRoutes configures all HTTP routes and middleware. Every route except
// /health and /stats passes rate limit, then auth, then the body size limit.
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	rateLimit := s.rateLimitMiddleware(om)
	sizeLimit := s.requestSizeLimitMiddleware()
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimit(s.authMiddleware(sizeLimit(h)))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)

	mux.HandleFunc("POST /ats", protected(s.createATSHandler(om)))
	mux.HandleFunc("POST /bias", protected(s.createBiasHandler(om)))
	mux.HandleFunc("POST /bias/replace", protected(s.createDebiasHandler(om)))
	mux.HandleFunc("POST /insights", protected(s.createInsightsHandler(om)))
	mux.HandleFunc("POST /salary", protected(s.createSalaryHandler(om)))
	mux.HandleFunc("POST /jobs", protected(s.createJobsHandler(om)))
	mux.HandleFunc("POST /advise", protected(s.createAdviseHandler(om)))

	mux.HandleFunc("GET /resumes", protected(s.createListResumesHandler(om)))
	mux.HandleFunc("GET /resumes/{slot}", protected(s.createGetResumeHandler(om)))
	mux.HandleFunc("PUT /resumes/{slot}", protected(s.createSaveResumeHandler(om)))
	mux.HandleFunc("DELETE /resumes/{slot}", protected(s.createDeleteResumeHandler(om)))
	mux.HandleFunc("POST /resumes/{slot}/bias", protected(s.createStoredBiasHandler(om)))

	return mux
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := requestAPIKey(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r),
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// maskAPIKey shows only the first 8 characters of a key
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
