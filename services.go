package main

import (
	"github.com/sirupsen/logrus"

	"go-gia/analysis"
	"go-gia/config"
	"go-gia/events"
	"go-gia/metrics"
	"go-gia/news"
)

// buildServices wires the feed and analyzer from configuration. Missing API
// keys leave the corresponding upstream nil so the services serve fallbacks.
func buildServices(cfg config.Config, log logrus.FieldLogger, m *metrics.Metrics) (*events.Service, *analysis.Analyzer) {
	var searcher events.Searcher
	if cfg.News.APIKey != "" {
		searcher = news.NewClient(cfg.News.APIKey, cfg.News.BaseURL, cfg.News.Timeout)
	}
	feed := events.NewService(searcher,
		events.WithLogger(log.WithField("component", "events")),
		events.WithMetrics(m),
		events.WithFallbackMode(cfg.News.Fallback),
	)

	var generator analysis.Generator
	if cfg.AI.APIKey != "" {
		generator = analysis.NewGeminiGenerator(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Timeout)
	}
	analyzer := analysis.NewAnalyzer(generator, cfg.AI.Models,
		analysis.WithLogger(log.WithField("component", "analysis")),
		analysis.WithMetrics(m),
		analysis.WithRequestsPerMinute(cfg.AI.RequestsPerMinute),
	)

	return feed, analyzer
}
