package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker/v2"

	resumeErrors "resumeaudit/internal/errors"
	"resumeaudit/internal/schema"
	"resumeaudit/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// healthHandler reports store reachability and AI model availability
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	timeout := s.AppConfig.Observability.HealthCheck.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	storeStatus := s.checkStoreHealth(ctx)
	aiStatus := s.checkAIHealth(ctx)

	response := map[string]any{
		"status":  "healthy",
		"service": "resumeaudit",
		"version": s.Version,
		"store":   storeStatus,
		"ai":      aiStatus,
	}

	status := http.StatusOK
	if !storeStatus["healthy"].(bool) || !aiStatus["healthy"].(bool) {
		response["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func (s *Server) checkStoreHealth(ctx context.Context) map[string]any {
	status := map[string]any{
		"driver":  s.AppConfig.Store.Driver,
		"healthy": true,
	}
	if s.Store == nil {
		status["healthy"] = false
		status["error"] = "store not configured"
		return status
	}

	if b, ok := s.Store.(interface{ BreakerState() string }); ok {
		status["circuit_breaker"] = b.BreakerState()
	}
	if _, err := s.Store.List(ctx); err != nil {
		status["healthy"] = false
		status["error"] = err.Error()
	}
	return status
}

// checkAIHealth only degrades health when an advisor is configured and its
// model cannot be reached
func (s *Server) checkAIHealth(ctx context.Context) map[string]any {
	if s.Advisor == nil {
		return map[string]any{"configured": false, "healthy": true}
	}

	timeout := s.AppConfig.Observability.HealthCheck.AIModelCheckTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	info := s.Advisor.GetModelInfo(ctx)
	status := map[string]any{
		"configured": true,
		"healthy":    info != nil && info.Available,
		"model":      info,
	}
	if p, ok := s.Advisor.(interface{ CircuitBreakerStats() map[string]any }); ok {
		status["circuit_breakers"] = p.CircuitBreakerStats()
	}
	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "resumeaudit",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"auth_enabled":           len(s.APIKeys) > 0,
		},
		"store": map[string]any{
			"driver": s.AppConfig.Store.Driver,
		},
		"ai": map[string]any{
			"configured": s.Advisor != nil,
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests":       s.RateLimit.Requests,
			"window":         rateWindow(s.RateLimit.Window).String(),
			"burst_capacity": s.RateLimit.BurstCapacity,
			"by_ip":          s.RateLimit.ByIP,
			"by_api_key":     s.RateLimit.ByAPIKey,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// readBody reads a JSON request body, reporting oversize bodies clearly
func readBody(r *http.Request) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, resumeErrors.NewValidationError(resumeErrors.ErrCodeInvalidRequest,
			"content-type must be application/json", err)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, resumeErrors.NewValidationError(resumeErrors.ErrCodeInvalidRequest,
				fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit), err)
		}
		return nil, resumeErrors.NewIOError(resumeErrors.ErrCodeFileNotReadable, "failed to read request body", err)
	}
	return body, nil
}

// parseJSONRequest decodes and validates a request body into v
func parseJSONRequest(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return resumeErrors.NewValidationError(resumeErrors.ErrCodeInvalidRequest, "failed to parse JSON", err)
	}

	if err := validate.Struct(v); err != nil {
		return resumeErrors.NewValidationError(resumeErrors.ErrCodeInvalidRequest, describeValidation(err), err)
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag()))
	}
	return "invalid request: " + strings.Join(msgs, ", ")
}

// decodeResume schema-checks a raw résumé document
func decodeResume(raw []byte) (types.ResumeRecord, error) {
	r, err := schema.DecodeResume(raw)
	if err != nil {
		return r, resumeErrors.NewValidationError(resumeErrors.ErrCodeInvalidResume,
			strings.TrimSpace(err.Error()), err)
	}
	return r, nil
}

// statusFor maps an error onto an HTTP status
func statusFor(err error) int {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return http.StatusServiceUnavailable
	}

	appErr, ok := resumeErrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case resumeErrors.ErrCodeResumeNotFound:
		return http.StatusNotFound
	case resumeErrors.ErrCodeStoreUnavailable, resumeErrors.ErrCodeAIUnavailable, resumeErrors.ErrCodeMissingAPIKey:
		return http.StatusServiceUnavailable
	case resumeErrors.ErrCodeAITimeout:
		return http.StatusGatewayTimeout
	}

	switch appErr.Type {
	case resumeErrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case resumeErrors.ErrorTypeAI:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeAppError logs server-side failures and writes the error body
func (s *Server) writeAppError(w http.ResponseWriter, err error, endpoint string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed", "endpoint", endpoint, "status", status)
	}

	if appErr, ok := resumeErrors.AsAppError(err); ok {
		writeErrorResponse(w, appErr.Code, appErr.Message, status)
		return
	}
	if status == http.StatusServiceUnavailable {
		writeErrorResponse(w, "SERVICE_UNAVAILABLE", "dependency temporarily unavailable", status)
		return
	}
	writeErrorResponse(w, "INTERNAL_ERROR", "internal server error", status)
}

// writeJSON writes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v) // headers are already sent
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Error: error, Message: message})
}
