package server

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resumeaudit/internal/ai"
	"resumeaudit/internal/ats"
	"resumeaudit/internal/bias"
	"resumeaudit/internal/common"
	resumeErrors "resumeaudit/internal/errors"
	"resumeaudit/internal/insights"
	"resumeaudit/internal/observability"
	"resumeaudit/internal/store"
	"resumeaudit/internal/types"
)

const tracerName = "resumeaudit.api"

// resolveDomain prefers the requested domain, then the résumé's own, then
// the configured default
func (s *Server) resolveDomain(requested string, resume *types.ResumeRecord) string {
	var resumeDomain string
	if resume != nil {
		resumeDomain = resume.Domain
	}
	if d := common.ResolveDomain(requested, resumeDomain, s.defaultDomain()); d != "" {
		return d
	}
	return ats.DefaultDomain
}

func (s *Server) defaultDomain() string {
	if s.AppConfig == nil {
		return ""
	}
	return s.AppConfig.App.DefaultDomain
}

// fail records err on the span and analysis counter, then writes it
func (s *Server) fail(ctx context.Context, w http.ResponseWriter, om *observability.ObservabilityManager, span trace.Span, kind string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if appErr, ok := resumeErrors.AsAppError(err); ok {
		span.SetAttributes(attribute.String("error.type", string(appErr.Type)))
	}
	if kind != "" {
		om.Metrics().RecordAnalysis(ctx, kind, false)
	}
	endpoint := "api.resumes"
	if kind != "" {
		endpoint = "api." + kind
	}
	s.writeAppError(w, err, endpoint)
}

// createATSHandler scores a résumé against a domain keyword list
func (s *Server) createATSHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.ats")
		defer span.End()

		var req ATSRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisATS, err)
			return
		}
		resume, err := decodeResume(req.Resume)
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisATS, err)
			return
		}

		domain := s.resolveDomain(req.Domain, &resume)
		report := ats.Report(resume, domain)

		span.SetAttributes(
			attribute.String("resume.domain", report.Domain),
			attribute.Int("ats.score", report.Result.Score),
			attribute.Int("ats.issues", len(report.Result.Issues)),
		)
		metrics := om.Metrics()
		metrics.RecordAnalysis(ctx, observability.AnalysisATS, true, attribute.String("domain", report.Domain))
		metrics.RecordATSScore(ctx, report.Result.Score, report.Domain)

		writeJSON(w, http.StatusOK, report)
	}
}

// createBiasHandler reports bias findings for a résumé
func (s *Server) createBiasHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.bias")
		defer span.End()

		var req ResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisBias, err)
			return
		}
		resume, err := decodeResume(req.Resume)
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisBias, err)
			return
		}

		report := bias.Report(resume)
		span.SetAttributes(
			attribute.Int("bias.score", report.Result.Score),
			attribute.Int("bias.issues", report.Result.Issues),
		)
		om.Metrics().RecordAnalysis(ctx, observability.AnalysisBias, true)
		om.Metrics().RecordBiasScore(ctx, report.Result.Score)

		writeJSON(w, http.StatusOK, report)
	}
}

// createDebiasHandler rewrites biased wording and re-analyzes the result
func (s *Server) createDebiasHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.debias")
		defer span.End()

		var req ResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisDebias, err)
			return
		}
		resume, err := decodeResume(req.Resume)
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisDebias, err)
			return
		}

		report := bias.Debias(resume)
		span.SetAttributes(
			attribute.Int("bias.before", report.Before.Score),
			attribute.Int("bias.after", report.After.Score),
		)
		om.Metrics().RecordAnalysis(ctx, observability.AnalysisDebias, true)

		writeJSON(w, http.StatusOK, report)
	}
}

func (s *Server) createInsightsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.insights")
		defer span.End()

		var req InsightsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisInsights, err)
			return
		}

		insight := insights.Career(s.resolveDomain(req.Domain, nil))
		span.SetAttributes(attribute.String("resume.domain", insight.Domain))
		om.Metrics().RecordAnalysis(ctx, observability.AnalysisInsights, true, attribute.String("domain", insight.Domain))

		writeJSON(w, http.StatusOK, insight)
	}
}

func (s *Server) createSalaryHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.salary")
		defer span.End()

		var req SalaryRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisSalary, err)
			return
		}
		resume, err := decodeResume(req.Resume)
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisSalary, err)
			return
		}

		estimate := insights.EstimateSalary(resume, s.resolveDomain(req.Domain, &resume))
		span.SetAttributes(
			attribute.String("resume.domain", estimate.Domain),
			attribute.String("salary.role", estimate.MatchedRole),
		)
		om.Metrics().RecordAnalysis(ctx, observability.AnalysisSalary, true, attribute.String("domain", estimate.Domain))

		writeJSON(w, http.StatusOK, estimate)
	}
}

func (s *Server) createJobsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.jobs")
		defer span.End()

		var req JobsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisJobs, err)
			return
		}
		resume, err := decodeResume(req.Resume)
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisJobs, err)
			return
		}

		alerts := insights.Jobs(resume, s.resolveDomain(req.Domain, &resume))
		span.SetAttributes(
			attribute.String("resume.domain", alerts.Domain),
			attribute.Int("jobs.count", len(alerts.Jobs)),
		)
		om.Metrics().RecordAnalysis(ctx, observability.AnalysisJobs, true, attribute.String("domain", alerts.Domain))

		writeJSON(w, http.StatusOK, alerts)
	}
}

// createAdviseHandler forwards a question about the résumé to the assistant
func (s *Server) createAdviseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.advise")
		defer span.End()

		if s.Advisor == nil {
			s.fail(ctx, w, om, span, observability.AnalysisAdvise,
				resumeErrors.NewAIError(resumeErrors.ErrCodeAIUnavailable, "AI assistant is not configured", nil))
			return
		}

		var req AdviseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisAdvise, err)
			return
		}
		resume, err := decodeResume(req.Resume)
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisAdvise, err)
			return
		}

		span.SetAttributes(attribute.Int("request.question_length", len(req.Question)))

		var output types.AdviceOutput
		input := types.AdviceInput{Resume: resume, Question: req.Question}
		err = om.Metrics().TrackAIOperation(ctx, ai.OperationAdvise, func(ctx context.Context) (*observability.TokenUsage, error) {
			out, usage, err := s.Advisor.Advise(ctx, input, s.defaultDomain())
			if err != nil {
				return nil, err
			}
			output = out
			return (*observability.TokenUsage)(usage), nil
		})
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisAdvise, err)
			return
		}

		om.Metrics().RecordAnalysis(ctx, observability.AnalysisAdvise, true, attribute.String("domain", output.Domain))
		writeJSON(w, http.StatusOK, output)
	}
}

// storeCall runs a store operation with store metrics attached
func (s *Server) storeCall(ctx context.Context, om *observability.ObservabilityManager, operation string, fn func(context.Context) error) error {
	if s.Store == nil {
		return resumeErrors.NewStorageError(resumeErrors.ErrCodeStoreUnavailable, "resume store not configured", nil)
	}
	return om.Metrics().TrackStoreOperation(ctx, operation, fn, store.ErrNotFound)
}

func (s *Server) createListResumesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.resumes.list")
		defer span.End()

		var entries []store.Entry
		err := s.storeCall(ctx, om, "list", func(ctx context.Context) (err error) {
			entries, err = s.Store.List(ctx)
			return err
		})
		if err != nil {
			s.fail(ctx, w, om, span, "", store.AsAppError(err, ""))
			return
		}
		if entries == nil {
			entries = []store.Entry{}
		}

		span.SetAttributes(attribute.Int("store.entries", len(entries)))
		writeJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) createGetResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := r.PathValue("slot")
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.resumes.get",
			trace.WithAttributes(attribute.String("store.slot", slot)))
		defer span.End()

		var entry *store.Entry
		err := s.storeCall(ctx, om, "get", func(ctx context.Context) (err error) {
			entry, err = s.Store.Get(ctx, slot)
			return err
		})
		if err != nil {
			s.fail(ctx, w, om, span, "", store.AsAppError(err, slot))
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// createSaveResumeHandler stores the request body, a raw résumé document,
// in the slot
func (s *Server) createSaveResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := r.PathValue("slot")
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.resumes.save",
			trace.WithAttributes(attribute.String("store.slot", slot)))
		defer span.End()

		body, err := readBody(r)
		if err != nil {
			s.fail(ctx, w, om, span, "", err)
			return
		}
		resume, err := decodeResume(body)
		if err != nil {
			s.fail(ctx, w, om, span, "", err)
			return
		}

		var entry *store.Entry
		err = s.storeCall(ctx, om, "save", func(ctx context.Context) (err error) {
			entry, err = s.Store.Save(ctx, slot, resume)
			return err
		})
		if err != nil {
			s.fail(ctx, w, om, span, "", store.AsAppError(err, slot))
			return
		}

		s.Logger.Info("Resume saved", "slot", slot, "id", entry.ID)
		writeJSON(w, http.StatusOK, entry)
	}
}

func (s *Server) createDeleteResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := r.PathValue("slot")
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.resumes.delete",
			trace.WithAttributes(attribute.String("store.slot", slot)))
		defer span.End()

		err := s.storeCall(ctx, om, "delete", func(ctx context.Context) error {
			return s.Store.Delete(ctx, slot)
		})
		if err != nil {
			s.fail(ctx, w, om, span, "", store.AsAppError(err, slot))
			return
		}

		s.Logger.Info("Resume deleted", "slot", slot)
		w.WriteHeader(http.StatusNoContent)
	}
}

// createStoredBiasHandler analyzes the résumé in a slot and caches the
// outcome on the entry
func (s *Server) createStoredBiasHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := r.PathValue("slot")
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.resumes.bias",
			trace.WithAttributes(attribute.String("store.slot", slot)))
		defer span.End()

		var entry *store.Entry
		err := s.storeCall(ctx, om, "get", func(ctx context.Context) (err error) {
			entry, err = s.Store.Get(ctx, slot)
			return err
		})
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisBias, store.AsAppError(err, slot))
			return
		}

		report := bias.Report(entry.Resume)
		err = s.storeCall(ctx, om, "record_bias", func(ctx context.Context) error {
			return s.Store.RecordBias(ctx, slot, report.Result.Score, report.Result.Issues)
		})
		if err != nil {
			s.fail(ctx, w, om, span, observability.AnalysisBias, store.AsAppError(err, slot))
			return
		}

		span.SetAttributes(attribute.Int("bias.score", report.Result.Score))
		om.Metrics().RecordAnalysis(ctx, observability.AnalysisBias, true, attribute.String("slot", slot))
		om.Metrics().RecordBiasScore(ctx, report.Result.Score)

		writeJSON(w, http.StatusOK, report)
	}
}
