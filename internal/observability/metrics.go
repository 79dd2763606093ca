package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"resumeaudit/internal/config"
)

// Analysis kinds
const (
	AnalysisATS      = "ats"
	AnalysisBias     = "bias"
	AnalysisDebias   = "debias"
	AnalysisInsights = "insights"
	AnalysisSalary   = "salary"
	AnalysisJobs     = "jobs"
	AnalysisAdvise   = "advise"
)

// TokenUsage is the model token count of one AI call
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Metrics holds the custom instruments. A zero Metrics records nothing.
type Metrics struct {
	// AI operations
	AIProcessingTime metric.Float64Histogram
	AIRequestCount   metric.Int64Counter
	AIErrorCount     metric.Int64Counter
	AITokenUsage     metric.Int64Histogram

	// Business
	AnalysesTotal metric.Int64Counter
	ATSScore      metric.Int64Histogram
	BiasScore     metric.Int64Histogram

	// Infrastructure
	RateLimitHits metric.Int64Counter
	StoreOps      metric.Int64Counter
	StoreDuration metric.Float64Histogram

	settings config.CustomMetricsConfig
}

var scoreBuckets = []float64{20, 30, 40, 50, 60, 70, 80, 90, 100}

// newMetrics reads the tracking switches from cfg. Without a config every
// switch is on.
func newMetrics(cfg *config.Config) *Metrics {
	if cfg != nil {
		return &Metrics{settings: cfg.Observability.CustomMetrics}
	}
	return &Metrics{settings: config.CustomMetricsConfig{
		AIOperations:    config.AIOperationsMetricsConfig{Enabled: true, TrackDuration: true, TrackTokenUsage: true},
		BusinessMetrics: config.BusinessMetricsConfig{Enabled: true, TrackSuccessRates: true, TrackScores: true},
		Infrastructure:  config.InfrastructureMetricsConfig{Enabled: true, TrackRateLimits: true, TrackStore: true},
	}}
}

func createMetrics(meter metric.Meter, cfg *config.Config) (*Metrics, error) {
	m := newMetrics(cfg)
	var err error

	m.AIProcessingTime, err = meter.Float64Histogram("resumeaudit_ai_processing_duration_seconds",
		metric.WithDescription("Time spent processing AI requests"), metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI processing time metric: %w", err)
	}
	m.AIRequestCount, err = meter.Int64Counter("resumeaudit_ai_requests_total",
		metric.WithDescription("Total number of AI requests"))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI request count metric: %w", err)
	}
	m.AIErrorCount, err = meter.Int64Counter("resumeaudit_ai_errors_total",
		metric.WithDescription("Total number of AI request errors"))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI error count metric: %w", err)
	}
	m.AITokenUsage, err = meter.Int64Histogram("resumeaudit_ai_token_usage",
		metric.WithDescription("Token usage for AI requests"), metric.WithUnit("{token}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI token usage metric: %w", err)
	}

	m.AnalysesTotal, err = meter.Int64Counter("resumeaudit_analyses_total",
		metric.WithDescription("Total number of analyses run, by kind"))
	if err != nil {
		return nil, fmt.Errorf("failed to create analyses metric: %w", err)
	}
	m.ATSScore, err = meter.Int64Histogram("resumeaudit_ats_score",
		metric.WithDescription("Distribution of ATS scores"), metric.WithExplicitBucketBoundaries(scoreBuckets...))
	if err != nil {
		return nil, fmt.Errorf("failed to create ATS score metric: %w", err)
	}
	m.BiasScore, err = meter.Int64Histogram("resumeaudit_bias_score",
		metric.WithDescription("Distribution of bias scores"), metric.WithExplicitBucketBoundaries(scoreBuckets...))
	if err != nil {
		return nil, fmt.Errorf("failed to create bias score metric: %w", err)
	}

	m.RateLimitHits, err = meter.Int64Counter("resumeaudit_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}
	m.StoreOps, err = meter.Int64Counter("resumeaudit_store_operations_total",
		metric.WithDescription("Total number of resume store operations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create store operations metric: %w", err)
	}
	m.StoreDuration, err = meter.Float64Histogram("resumeaudit_store_operation_duration_seconds",
		metric.WithDescription("Time spent in resume store operations"), metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create store duration metric: %w", err)
	}

	return m, nil
}

// TrackAIOperation runs fn in an "ai.<operation>" span and records duration,
// request, error and token metrics for it.
func (m *Metrics) TrackAIOperation(ctx context.Context, operation string, fn func(context.Context) (*TokenUsage, error)) error {
	ctx, span := otel.Tracer("resumeaudit.ai").Start(ctx, "ai."+operation)
	defer span.End()

	start := time.Now()
	usage, err := fn(ctx)
	duration := time.Since(start).Seconds()

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}
	span.SetAttributes(attrs...)
	if usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if m.AIRequestCount == nil || !m.settings.AIOperations.Enabled {
		return err
	}

	opt := metric.WithAttributes(attrs...)
	if m.settings.AIOperations.TrackDuration {
		m.AIProcessingTime.Record(ctx, duration, opt)
	}
	m.AIRequestCount.Add(ctx, 1, opt)
	if err != nil {
		m.AIErrorCount.Add(ctx, 1, opt)
	}
	if usage != nil && m.settings.AIOperations.TrackTokenUsage {
		for tokenType, value := range map[string]int64{
			"input":  usage.InputTokens,
			"output": usage.OutputTokens,
			"total":  usage.TotalTokens,
		} {
			m.AITokenUsage.Record(ctx, value, metric.WithAttributes(
				attribute.String("operation", operation),
				attribute.String("token_type", tokenType),
			))
		}
	}
	return err
}

// RecordAnalysis counts one analysis of the given kind
func (m *Metrics) RecordAnalysis(ctx context.Context, kind string, success bool, attrs ...attribute.KeyValue) {
	if m.AnalysesTotal == nil || !m.settings.BusinessMetrics.Enabled {
		return
	}
	all := []attribute.KeyValue{attribute.String("kind", kind)}
	if m.settings.BusinessMetrics.TrackSuccessRates {
		all = append(all, attribute.Bool("success", success))
	}
	m.AnalysesTotal.Add(ctx, 1, metric.WithAttributes(append(all, attrs...)...))
}

// RecordATSScore records an ATS score for domain
func (m *Metrics) RecordATSScore(ctx context.Context, score int, domain string) {
	if m.ATSScore == nil || !m.scoresEnabled() {
		return
	}
	m.ATSScore.Record(ctx, int64(score), metric.WithAttributes(attribute.String("domain", domain)))
}

// RecordBiasScore records a bias score
func (m *Metrics) RecordBiasScore(ctx context.Context, score int) {
	if m.BiasScore == nil || !m.scoresEnabled() {
		return
	}
	m.BiasScore.Record(ctx, int64(score))
}

func (m *Metrics) scoresEnabled() bool {
	return m.settings.BusinessMetrics.Enabled && m.settings.BusinessMetrics.TrackScores
}

// RecordRateLimitHit counts a rejected request
func (m *Metrics) RecordRateLimitHit(ctx context.Context, limiter string) {
	if m.RateLimitHits == nil || !m.settings.Infrastructure.Enabled || !m.settings.Infrastructure.TrackRateLimits {
		return
	}
	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("limiter", limiter)))
}

// TrackStoreOperation times a store call. A missing slot counts as success.
func (m *Metrics) TrackStoreOperation(ctx context.Context, operation string, fn func(context.Context) error, notFound error) error {
	start := time.Now()
	err := fn(ctx)
	if m.StoreOps == nil || !m.settings.Infrastructure.Enabled || !m.settings.Infrastructure.TrackStore {
		return err
	}

	success := err == nil || (notFound != nil && errors.Is(err, notFound))
	opt := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	)
	m.StoreOps.Add(ctx, 1, opt)
	m.StoreDuration.Record(ctx, time.Since(start).Seconds(), opt)
	return err
}
