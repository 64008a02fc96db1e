package analysis

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"go-gia/logger"
	"go-gia/metrics"
	"go-gia/types"
)

// Generator sends one prompt to one model and returns the raw reply text.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type Analyzer struct {
	generator Generator
	models    []string
	limiter   *rate.Limiter
	log       logrus.FieldLogger
	metrics   *metrics.Metrics
}

type Option func(*Analyzer)

func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Analyzer) { a.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithRequestsPerMinute paces outbound model calls. Zero disables pacing.
func WithRequestsPerMinute(rpm int) Option {
	return func(a *Analyzer) {
		if rpm <= 0 {
			a.limiter = nil
			return
		}
		a.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
	}
}

// NewAnalyzer builds the analysis service. A nil generator means no AI key is
// configured and every call returns the fallback analysis. Models are tried in
// the given order.
func NewAnalyzer(generator Generator, models []string, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator: generator,
		models:    append([]string(nil), models...),
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze always produces a well-formed result. The first model that returns
// a valid five-category reply wins; if none does the fallback is returned.
func (a *Analyzer) Analyze(ctx context.Context, event, location string) types.AnalysisResult {
	if a.generator == nil {
		a.log.Debug("gemini api key not configured, serving fallback analysis")
		return a.fallback(event, location)
	}

	prompt := BuildPrompt(event, location)
	for _, model := range a.models {
		if err := ctx.Err(); err != nil {
			a.log.WithError(err).Warn("request cancelled before analysis completed")
			break
		}

		impacts, err := a.tryModel(ctx, model, prompt)
		if err != nil {
			a.log.WithError(err).WithFields(logrus.Fields{
				"upstream": "gemini",
				"model":    model,
			}).Warn("model attempt failed")
			a.metrics.UpstreamFailure("gemini")
			continue
		}

		a.log.WithField("model", model).Info("analysis generated")
		a.metrics.AnalysisServed(types.SourceGemini)
		return types.AnalysisResult{
			Event:           event,
			Location:        location,
			OverallSeverity: types.OverallSeverity(impacts),
			Impacts:         impacts,
			Source:          types.SourceGemini,
		}
	}

	a.log.WithField("models", len(a.models)).Warn("all models failed, serving fallback analysis")
	return a.fallback(event, location)
}

func (a *Analyzer) tryModel(ctx context.Context, model, prompt string) (map[types.Category]types.ImpactCategory, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, types.Upstream("gemini", err)
		}
	}

	reply, err := a.generator.Generate(ctx, model, prompt)
	if err != nil {
		return nil, types.Upstream("gemini", err)
	}

	impacts, err := ParseImpacts(CleanReply(reply))
	if err != nil {
		return nil, types.Upstream("gemini", err)
	}
	return impacts, nil
}

func (a *Analyzer) fallback(event, location string) types.AnalysisResult {
	a.metrics.AnalysisServed(types.SourceFallback)
	return Fallback(event, location)
}
