package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-gia/handlers"
	"go-gia/logger"
	"go-gia/metrics"
)

type Dependencies struct {
	Events   handlers.EventLister
	Analyzer handlers.ImpactAnalyzer
	Metrics  *metrics.Metrics
	Log      logrus.FieldLogger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logger.Discard()
	}

	r := gin.New()
	r.Use(
		RequestID(),
		AccessLog(log),
		Instrument(deps.Metrics),
		Recovery(log),
	)

	r.GET("/", handlers.Home)
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/events", handlers.GetEvents(deps.Events, log))
		api.POST("/analyze", handlers.Analyze(deps.Analyzer, log))
	}

	r.NoRoute(handlers.NotFound)

	return r
}
