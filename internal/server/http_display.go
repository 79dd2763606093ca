package server

import (
	"fmt"
	"io"
)

// displayServerInfo prints the listening address and effective limits
func (s *Server) displayServerInfo(w io.Writer, scheme string) {
	fmt.Fprintf(w, "Listening on %s://%s:%s (TLS mode: %s)\n", scheme, s.Host, s.Port, tlsMode(s.TLSConfig.Mode))
	s.displayEndpoints(w)
	s.displayAuthInfo(w)
	s.displayLimits(w)
}

func tlsMode(mode string) string {
	if mode == "" {
		return "disabled"
	}
	return mode
}

var endpoints = []struct{ method, path, desc string }{
	{"GET", "/health", "Health check"},
	{"GET", "/stats", "Server statistics"},
	{"POST", "/ats", "ATS score for a resume"},
	{"POST", "/bias", "Bias report for a resume"},
	{"POST", "/bias/replace", "Rewrite biased wording"},
	{"POST", "/insights", "Career insights for a domain"},
	{"POST", "/salary", "Salary estimate"},
	{"POST", "/jobs", "Sample job openings ranked by match"},
	{"POST", "/advise", "Ask the resume assistant"},
	{"GET", "/resumes", "List stored resumes"},
	{"GET", "/resumes/{slot}", "Show a stored resume"},
	{"PUT", "/resumes/{slot}", "Save a resume into a slot"},
	{"DELETE", "/resumes/{slot}", "Delete a stored resume"},
	{"POST", "/resumes/{slot}/bias", "Analyze and cache bias for a slot"},
}

func (s *Server) displayEndpoints(w io.Writer) {
	fmt.Fprintln(w, "Available endpoints:")
	for _, e := range endpoints {
		fmt.Fprintf(w, "  %-6s %-22s - %s\n", e.method, e.path, e.desc)
	}
	if s.Advisor == nil {
		fmt.Fprintln(w, "  /advise answers 503 until an AI API key is configured")
	}
}

func (s *Server) displayAuthInfo(w io.Writer) {
	if len(s.APIKeys) > 0 {
		fmt.Fprintf(w, "API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		return
	}
	fmt.Fprintln(w, "API authentication: DISABLED (no API keys configured)")
	fmt.Fprintln(w, "WARNING: API endpoints are publicly accessible!")
}

func (s *Server) displayLimits(w io.Writer) {
	if s.MaxRequestSize > 0 {
		fmt.Fprintf(w, "Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Fprintln(w, "Request size limit: DISABLED")
	}

	if s.RateLimit == nil || !s.RateLimit.Enabled {
		fmt.Fprintln(w, "Rate limiting: DISABLED")
		return
	}
	fmt.Fprintf(w, "Rate limiting: ENABLED (%d requests per %s, burst: %d)\n",
		s.RateLimit.Requests, rateWindow(s.RateLimit.Window), s.RateLimit.BurstCapacity)
	if s.RateLimit.ByAPIKey {
		fmt.Fprintln(w, "  - Per API key rate limiting enabled")
	}
	if s.RateLimit.ByIP {
		fmt.Fprintln(w, "  - Per IP address rate limiting enabled")
	}
}
