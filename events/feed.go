package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"go-gia/logger"
	"go-gia/metrics"
	"go-gia/news"
	"go-gia/types"
)

// Origin tells whether a feed response came from the live API.
type Origin string

const (
	Live     Origin = "live"
	Fallback Origin = "fallback"
)

const maxEvents = 5

// Searcher is the news search upstream.
type Searcher interface {
	Search(ctx context.Context, q news.Query) ([]news.Article, error)
}

type Service struct {
	searcher Searcher
	query    news.Query
	mode     string
	log      logrus.FieldLogger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithFallbackMode selects ModeUnavailable or ModeSamples.
func WithFallbackMode(mode string) Option {
	return func(s *Service) { s.mode = mode }
}

func WithQuery(q news.Query) Option {
	return func(s *Service) { s.query = q }
}

// NewService builds the feed. A nil searcher means no news API key is
// configured and every call is served from the fallback.
func NewService(searcher Searcher, opts ...Option) *Service {
	s := &Service{
		searcher: searcher,
		query:    news.DefaultQuery,
		mode:     ModeUnavailable,
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List never fails: any upstream problem yields the fallback list.
func (s *Service) List(ctx context.Context) ([]types.Event, Origin) {
	events, origin := s.list(ctx)
	s.metrics.EventsServed(string(origin))
	return events, origin
}

func (s *Service) list(ctx context.Context) ([]types.Event, Origin) {
	if s.searcher == nil {
		s.log.Debug("news api key not configured, serving fallback events")
		return s.Fallback(), Fallback
	}

	articles, err := s.searcher.Search(ctx, s.query)
	if err != nil {
		s.log.WithError(err).WithField("upstream", "newsapi").Warn("news search failed, serving fallback events")
		s.metrics.UpstreamFailure("newsapi")
		return s.Fallback(), Fallback
	}

	now := s.now()
	events := make([]types.Event, 0, maxEvents)
	for _, article := range articles {
		if len(events) == maxEvents {
			break
		}
		if !usable(article) {
			continue
		}
		events = append(events, FromArticle(len(events)+1, article, now))
	}

	if len(events) == 0 {
		s.log.WithField("articles", len(articles)).Warn("news search returned no usable articles, serving fallback events")
		return s.Fallback(), Fallback
	}

	s.log.WithField("events", len(events)).Debug("served live events")
	return events, Live
}

// Fallback returns the configured fallback list.
func (s *Service) Fallback() []types.Event {
	if s.mode == ModeSamples {
		return sampleEvents()
	}
	return unavailableEvent(s.now())
}
